package model

// SeedCategories returns the starter categories used on first run and when
// stored categories cannot be read.
func SeedCategories() []Category {
	return []Category{
		{ID: "cat_1", Name: "mail templates", Icon: IconMail},
		{ID: "cat_2", Name: "code snippets", Icon: IconCode},
		{ID: "cat_3", Name: "signature/address", Icon: IconUser},
		{ID: "cat_4", Name: "hashtags", Icon: IconHash},
	}
}

// SeedClips returns the starter clips. They reference SeedCategories ids.
func SeedClips() []Clip {
	return []Clip{
		{
			ID:         "clip_1",
			CategoryID: "cat_1",
			Title:      "Thank you for your continued support",
			Content:    "Thank you as always for your continued support.\nThis is Tanaka from Example Corp.",
		},
		{
			ID:         "clip_2",
			CategoryID: "cat_1",
			Title:      "Scheduling request",
			Content:    "Would any of the following times work for you?\n\n- Mon 10:00 - 18:00\n- Tue 13:00 - 16:00",
		},
		{
			ID:         "clip_3",
			CategoryID: "cat_2",
			Title:      "React Component",
			Content:    "const Component = () => {\n  return <div>Hello World</div>;\n};",
		},
		{
			ID:         "clip_4",
			CategoryID: "cat_3",
			Title:      "Office address",
			Content:    "100-0000\n1-2-3 Chiyoda, Tokyo\nExample Bldg. 5F",
		},
	}
}
