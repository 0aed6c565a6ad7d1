package lookup

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mealsearch/internal/domain"
	appErrors "mealsearch/internal/errors"
)

// meal is one record of a TheMealDB search response. Only the fields the
// application uses are decoded.
type meal struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	Category     string `json:"strCategory"`
	Area         string `json:"strArea"`
	Instructions string `json:"strInstructions"`
	Tags         string `json:"strTags"`
	Thumbnail    string `json:"strMealThumb"`
}

// searchResponse wraps the result list. TheMealDB answers "no matches" with
// {"meals": null}.
type searchResponse struct {
	Meals *[]meal `json:"meals"`
}

func (m meal) candidate() domain.Candidate {
	return domain.Candidate{
		ID:           strings.TrimSpace(m.ID),
		Label:        strings.TrimSpace(m.Name),
		Category:     strings.TrimSpace(m.Category),
		Area:         strings.TrimSpace(m.Area),
		Instructions: m.Instructions,
		Tags:         domain.SplitTags(m.Tags),
		Thumbnail:    strings.TrimSpace(m.Thumbnail),
	}
}

// DecodeMeals parses a TheMealDB-shaped document. A missing or null "meals"
// key yields an empty list; anything that is not a JSON object with that
// shape, or a record without id or name, is a malformed payload.
func DecodeMeals(r io.Reader) ([]domain.Candidate, error) {
	var resp searchResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, appErrors.New(appErrors.CodeMalformedPayload, fmt.Sprintf("decode meals: %v", err), err)
	}
	if resp.Meals == nil {
		return []domain.Candidate{}, nil
	}
	out := make([]domain.Candidate, 0, len(*resp.Meals))
	for i, m := range *resp.Meals {
		c := m.candidate()
		if c.ID == "" || c.Label == "" {
			return nil, appErrors.New(appErrors.CodeMalformedPayload,
				fmt.Sprintf("decode meals: record %d has no id or name", i), nil)
		}
		out = append(out, c)
	}
	return out, nil
}
