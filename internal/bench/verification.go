package bench

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/okian/teamfit/internal/domain/model"
)

// Response bounds.
const (
	maxFormations = 3
	minScore      = 0
	maxScore      = 100
)

// VerifyFormations checks a /formations response body against the pool
// that was sent: at most three formations, highest score first, the
// expected team size, scores within 0..100, members drawn from the pool
// without repeats.
func VerifyFormations(body []byte, pool []model.Candidate, teamSize int) error {
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("%w: response is not JSON", ErrVerification)
	}
	doc := gjson.ParseBytes(body)
	if !doc.Get("ok").Bool() {
		return fmt.Errorf("%w: envelope not ok: %s", ErrVerification, doc.Get("error.message").String())
	}

	formations := doc.Get("data").Array()
	if len(formations) > maxFormations {
		return fmt.Errorf("%w: %d formations, want at most %d", ErrVerification, len(formations), maxFormations)
	}
	if len(pool) > 0 && len(formations) == 0 {
		return fmt.Errorf("%w: no formations for a pool of %d", ErrVerification, len(pool))
	}

	inPool := make(map[string]struct{}, len(pool))
	for _, c := range pool {
		inPool[c.ID] = struct{}{}
	}
	want := min(teamSize, len(pool))

	prev := int64(maxScore + 1)
	for i, f := range formations {
		score := f.Get("score").Int()
		if score < minScore || score > maxScore {
			return fmt.Errorf("%w: formation %d score %d out of range", ErrVerification, i, score)
		}
		if score > prev {
			return fmt.Errorf("%w: formation %d score %d above previous %d", ErrVerification, i, score, prev)
		}
		prev = score

		members := f.Get("team.#.id").Array()
		if len(members) != want {
			return fmt.Errorf("%w: formation %d has %d members, want %d", ErrVerification, i, len(members), want)
		}
		seen := make(map[string]struct{}, len(members))
		for _, m := range members {
			id := m.String()
			if _, ok := inPool[id]; !ok {
				return fmt.Errorf("%w: formation %d member %q not in pool", ErrVerification, i, id)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: formation %d repeats member %q", ErrVerification, i, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}
