package api

import (
	"strings"
	"unicode/utf8"
)

// Field limits enforced by the backend schemas.
const (
	maxURLLen              = 255
	maxTitleLen            = 255
	maxIngredientNameLen   = 100
	maxVagueDescriptionLen = 20
)

// Validate checks a create request.
func (in RecipeInput) Validate() error {
	if err := requiredText("url", in.URL, maxURLLen); err != nil {
		return err
	}
	if err := requiredText("title", in.Title, maxTitleLen); err != nil {
		return err
	}
	return optionalText("image_url", in.ImageURL, maxURLLen)
}

// Validate checks a partial update.
func (p RecipePatch) Validate() error {
	if p.URL == nil && p.Title == nil && p.Description == nil && p.ImageURL == nil {
		return invalid("patch", "no fields to update")
	}
	if p.URL != nil {
		if err := requiredText("url", *p.URL, maxURLLen); err != nil {
			return err
		}
	}
	if p.Title != nil {
		if err := requiredText("title", *p.Title, maxTitleLen); err != nil {
			return err
		}
	}
	if p.ImageURL != nil {
		return optionalText("image_url", *p.ImageURL, maxURLLen)
	}
	return nil
}

// Validate checks a create request.
func (in IngredientInput) Validate() error {
	if err := requiredText("name", in.Name, maxIngredientNameLen); err != nil {
		return err
	}
	return optionalText("vague_description", in.VagueDescription, maxVagueDescriptionLen)
}

// Validate checks a partial update.
func (p IngredientPatch) Validate() error {
	if p.Name == nil && p.IsVague == nil && p.VagueDescription == nil {
		return invalid("patch", "no fields to update")
	}
	if p.Name != nil {
		if err := requiredText("name", *p.Name, maxIngredientNameLen); err != nil {
			return err
		}
	}
	if p.VagueDescription != nil {
		return optionalText("vague_description", *p.VagueDescription, maxVagueDescriptionLen)
	}
	return nil
}

func validateID(field string, id int64) error {
	if id <= 0 {
		return invalid(field, "must be positive, got %d", id)
	}
	return nil
}

func requiredText(field, value string, limit int) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}
	return optionalText(field, value, limit)
}

func optionalText(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return invalid(field, "must be at most %d characters, got %d", limit, n)
	}
	return nil
}
