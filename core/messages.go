package core

import "fmt"

// User-facing failure messages shared by several stages.
const (
	MsgEmptyText      = "The text is empty. Paste a recipe to import."
	MsgMissingURL     = "A URL is required."
	MsgInvalidURL     = "Invalid URL. Check the format (e.g. https://www.example.com/recipe)."
	MsgFetchTimeout   = "The site took too long to respond (>10s). Try pasting the recipe text instead."
	MsgUnreachable    = "Could not reach this URL. Try pasting the recipe text instead."
	MsgNoRecipeOnPage = "Could not extract a recipe from this page. Try pasting the text directly."
	MsgMissingImage   = "An image is required for photo import."
	MsgBadMediaType   = "Unsupported image type. Use a JPEG, PNG or WebP photo."
	MsgUnknownMode    = "Unknown import mode. Use url, text or photo."
)

// MsgFetchStatus formats the message for a non-2xx page response.
func MsgFetchStatus(code int) string {
	return fmt.Sprintf("The site responded with an error (%d). Try pasting the recipe text instead.", code)
}
