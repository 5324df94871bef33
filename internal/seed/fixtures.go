// Package seed provides database seeding utilities for development and testing.
package seed

import "creationity/internal/models"

// Categories lists the browseable categories per content type.
var Categories = map[string][]string{
	models.TypeJoke:       {"One-liner", "Formal Jokes", "Dark", "School Jokes"},
	models.TypePoem:       {"Nature", "Love", "Dreams"},
	models.TypeStory:      {"Fiction", "Non-Fiction", "Mystery", "Romance", "Adventure", "Horror", "Fantasy", "Sci-Fi"},
	models.TypePickupLine: {"Funny", "Romantic", "Cheesy", "Clever", "Smooth", "Creative", "Classic", "Modern"},
}

// Fixture is one curated content item seeded into fresh databases so the
// browse pages are never empty.
type Fixture struct {
	Type     string
	Title    string
	Content  string
	Category string
	Tags     []string
}

var Fixtures = []Fixture{
	{
		Type:     models.TypeJoke,
		Title:    "Atoms",
		Content:  "I don't trust atoms. They make up everything.",
		Category: "One-liner",
		Tags:     []string{"science", "classic"},
	},
	{
		Type:     models.TypeJoke,
		Title:    "The scarecrow",
		Content:  "Why did the scarecrow win an award? Because he was outstanding in his field.",
		Category: "Formal Jokes",
		Tags:     []string{"puns"},
	},
	{
		Type:     models.TypeJoke,
		Title:    "Graveyard popularity",
		Content:  "Why do people love living next to graveyards? Because everyone's dying to get in.",
		Category: "Dark",
		Tags:     []string{"dark"},
	},
	{
		Type:     models.TypeJoke,
		Title:    "Math book",
		Content:  "Why was the math book sad? It had too many problems.",
		Category: "School Jokes",
		Tags:     []string{"school", "math"},
	},
	{
		Type:     models.TypePoem,
		Title:    "Morning Fog",
		Content:  "The fog comes\non little cat feet.\nIt sits looking\nover harbor and city\nand then moves on.",
		Category: "Nature",
		Tags:     []string{"short", "imagery"},
	},
	{
		Type:     models.TypePoem,
		Title:    "What Is Love",
		Content:  "Love is not a word, nor a wish,\nit is the quiet hand that stays\nwhen every easier thing has left.",
		Category: "Love",
		Tags:     []string{"love"},
	},
	{
		Type:     models.TypePoem,
		Title:    "Half-Remembered",
		Content:  "I built a staircase out of sleep\nand climbed it every night,\nto rooms that never kept their shape\nand windows without light.",
		Category: "Dreams",
		Tags:     []string{"dreams"},
	},
	{
		Type:     models.TypeStory,
		Title:    "The Last Lighthouse Keeper",
		Content:  "When the automation crews finally reached Carrick Point, old Maren refused to hand over the keys. The light, she said, knew things the computers never would. On the third night of the handover storm, the backup system failed, and every sailor in the bay learned she was right.",
		Category: "Fiction",
		Tags:     []string{"sea", "short-story"},
	},
	{
		Type:     models.TypeStory,
		Title:    "The Letter in the Wall",
		Content:  "Renovating the kitchen, we found an envelope behind the plaster, postmarked 1943 and never opened. It took us two years to track down the family of the woman it was addressed to. Her granddaughter read it aloud at our table, and for a moment the house belonged to them again.",
		Category: "Non-Fiction",
		Tags:     []string{"history", "family"},
	},
	{
		Type:     models.TypeStory,
		Title:    "Room 4B",
		Content:  "Every hotel has a room they don't rent out. At the Belmore it was 4B, and the night clerk would tell you it was water damage. But the ledger in the basement listed a guest in 4B every single night for forty years, always the same name, always checked in, never checked out.",
		Category: "Mystery",
		Tags:     []string{"hotel", "suspense"},
	},
	{
		Type:     models.TypePickupLine,
		Title:    "Keyboard",
		Content:  "Are you a keyboard? Because you're just my type.",
		Category: "Funny",
		Tags:     []string{"nerdy"},
	},
	{
		Type:     models.TypePickupLine,
		Title:    "Map",
		Content:  "Are you a map? Because I keep getting lost in your eyes.",
		Category: "Romantic",
		Tags:     []string{"classic"},
	},
	{
		Type:     models.TypePickupLine,
		Title:    "Wi-Fi",
		Content:  "Are you Wi-Fi? Because I'm really feeling a connection.",
		Category: "Cheesy",
		Tags:     []string{"tech"},
	},
	{
		Type:     models.TypePickupLine,
		Title:    "Eleven",
		Content:  "On a scale of one to ten, you're a nine, and I'm the one you need.",
		Category: "Clever",
		Tags:     []string{"math"},
	},
}
