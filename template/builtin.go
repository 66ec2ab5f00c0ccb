package template

// builtinTemplates is the static site table compiled into the binary.
// User-supplied yaml templates are layered over it at startup (see Merged).
var builtinTemplates = []*Template{
	{
		SiteKey:             "example-doctors",
		BaseURL:             "https://doctors.example.com/find",
		SearchSelector:      "input#search-query",
		SubmitSelector:      "button[type='submit']",
		ResultItemSelector:  "div.result-card",
		ProfileLinkSelector: "a.profile-link",
		FieldMap: map[string]string{
			"name":      "h3.provider-name",
			"specialty": "span.specialty",
			"phone":     "a.phone-number",
			"address":   "div.practice-address",
		},
		WaitSeconds:         3,
		RequiresInteraction: true,
		ProfileNotes:        true,
	},
	{
		SiteKey:            "example-clinics",
		BaseURL:            "https://clinics.example.com/directory",
		ResultItemSelector: "li.clinic-listing",
		FieldMap: map[string]string{
			"name":    "h2.clinic-name",
			"phone":   "span.tel",
			"address": "address",
			"website": "a.website",
		},
		WaitSeconds:         2,
		RequiresInteraction: false,
		StaticProfiles:      true,
	},
	{
		SiteKey:             "example-attorneys",
		BaseURL:             "https://attorneys.example.com/search",
		SearchSelector:      "input[name='q']",
		SubmitSelector:      "form.search button.go",
		ResultItemSelector:  "article.lawyer",
		ProfileLinkSelector: "a.lawyer-profile",
		FieldMap: map[string]string{
			"name":     "h3 a",
			"practice": "p.practice-areas",
			"phone":    "div.contact .phone",
			"address":  "div.contact .office",
		},
		WaitSeconds:         2,
		RequiresInteraction: true,
		StaticProfiles:      true,
	},
}
