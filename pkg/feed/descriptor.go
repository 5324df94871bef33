// Package feed holds the view-model layer driving the content list and
// dashboard screens: loading, filtering, drafts, likes, and deletion flow.
package feed

import "creationity/internal/models"

// TypeDescriptor describes one content type's browse screen: its display
// labels and the categories offered as filters and draft options.
type TypeDescriptor struct {
	Type       string
	Title      string
	Singular   string
	Categories []string
}

// Descriptors catalogs the four content types.
var Descriptors = map[string]TypeDescriptor{
	models.TypeJoke: {
		Type:       models.TypeJoke,
		Title:      "Jokes",
		Singular:   "Joke",
		Categories: []string{"One-liner", "Formal Jokes", "Dark", "School Jokes"},
	},
	models.TypePoem: {
		Type:       models.TypePoem,
		Title:      "Poems",
		Singular:   "Poem",
		Categories: []string{"Nature", "Love", "Dreams"},
	},
	models.TypeStory: {
		Type:       models.TypeStory,
		Title:      "Stories",
		Singular:   "Story",
		Categories: []string{"Fiction", "Non-Fiction", "Mystery", "Romance", "Adventure", "Horror", "Fantasy", "Sci-Fi"},
	},
	models.TypePickupLine: {
		Type:       models.TypePickupLine,
		Title:      "Pickup Lines",
		Singular:   "Pickup Line",
		Categories: []string{"Funny", "Romantic", "Cheesy", "Clever", "Smooth", "Creative", "Classic", "Modern"},
	},
}

// DescriptorFor returns the descriptor for a content type key.
func DescriptorFor(contentType string) (TypeDescriptor, bool) {
	d, ok := Descriptors[contentType]
	return d, ok
}
