package api

import (
	"context"
	"net/http"
)

// CreateRecipe adds a recipe. Writes surface every failure to the caller.
func (c *Client) CreateRecipe(ctx context.Context, in RecipeInput) (WriteResult, error) {
	if err := in.Validate(); err != nil {
		return WriteResult{}, err
	}
	return c.write(ctx, http.MethodPost, c.catalogPath("recipes", 0), in)
}

// UpdateRecipe applies a partial update.
func (c *Client) UpdateRecipe(ctx context.Context, id int64, patch RecipePatch) (WriteResult, error) {
	if err := validateID("recipe_id", id); err != nil {
		return WriteResult{}, err
	}
	if err := patch.Validate(); err != nil {
		return WriteResult{}, err
	}
	return c.write(ctx, http.MethodPut, c.catalogPath("recipes", id), patch)
}

// DeleteRecipe removes a recipe.
func (c *Client) DeleteRecipe(ctx context.Context, id int64) (WriteResult, error) {
	if err := validateID("recipe_id", id); err != nil {
		return WriteResult{}, err
	}
	return c.write(ctx, http.MethodDelete, c.catalogPath("recipes", id), nil)
}

// CreateIngredient adds an ingredient.
func (c *Client) CreateIngredient(ctx context.Context, in IngredientInput) (WriteResult, error) {
	if err := in.Validate(); err != nil {
		return WriteResult{}, err
	}
	return c.write(ctx, http.MethodPost, c.catalogPath("ingredients", 0), in)
}

// UpdateIngredient applies a partial update.
func (c *Client) UpdateIngredient(ctx context.Context, id int64, patch IngredientPatch) (WriteResult, error) {
	if err := validateID("ingredient_id", id); err != nil {
		return WriteResult{}, err
	}
	if err := patch.Validate(); err != nil {
		return WriteResult{}, err
	}
	return c.write(ctx, http.MethodPut, c.catalogPath("ingredients", id), patch)
}

// DeleteIngredient removes an ingredient.
func (c *Client) DeleteIngredient(ctx context.Context, id int64) (WriteResult, error) {
	if err := validateID("ingredient_id", id); err != nil {
		return WriteResult{}, err
	}
	return c.write(ctx, http.MethodDelete, c.catalogPath("ingredients", id), nil)
}
