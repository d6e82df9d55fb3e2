package extract

import (
	"statuswatch/types"
)

// StructuredRules declares where a JSON-API provider keeps its affected
// components inside one incident object.
type StructuredRules struct {
	// Path walks nested objects down to the components array.
	Path []string
	// IDField names the component identifier on each array element.
	IDField string
	// StatusField names the sibling field carrying status text. Optional;
	// the adapter substitutes the incident title when it is absent.
	StatusField string
}

// Structured walks the declared path in a decoded incident payload and
// returns one candidate per listed component. The candidate Service holds
// the raw component identifier; resolution to a display name is the
// adapter's job. An absent or mistyped path yields an empty list — JSON
// sources use only this strategy, so there is no tier to escalate to.
func Structured(payload map[string]any, rules StructuredRules) ([]types.Candidate, error) {
	if payload == nil {
		return nil, ErrInvalidInput
	}

	node := any(payload)
	for _, key := range rules.Path {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, nil
		}
		node = obj[key]
	}

	list, ok := node.([]any)
	if !ok {
		return nil, nil
	}

	var candidates []types.Candidate
	for _, elem := range list {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		id := stringField(obj, rules.IDField)
		if id == "" {
			continue
		}
		candidates = append(candidates, types.Candidate{
			Service: id,
			Status:  stringField(obj, rules.StatusField),
		})
	}
	return candidates, nil
}

func stringField(obj map[string]any, key string) string {
	if key == "" {
		return ""
	}
	s, _ := obj[key].(string)
	return collapseSpace(s)
}
