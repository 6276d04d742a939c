package models

// CookieMap is the cookie name/value set attached to authenticated requests.
type CookieMap map[string]string

// Clone returns an independent copy of the map.
func (c CookieMap) Clone() CookieMap {
	if c == nil {
		return nil
	}
	out := make(CookieMap, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// WebImage is an inline web-sourced image reference in a candidate.
type WebImage struct {
	URL   string
	Title string
	Alt   string
}

// GeneratedImage is an AI-generated image. Fetching the actual asset requires
// the session cookies it was generated under, carried in Cookies.
type GeneratedImage struct {
	URL     string
	Title   string
	Alt     string
	Cookies CookieMap
}

// Candidate is one alternative model response within a single turn.
type Candidate struct {
	RCID            string
	Text            string
	Thoughts        string
	WebImages       []WebImage
	GeneratedImages []GeneratedImage
	Links           []string
}

// ModelOutput is the decoded result of one turn. Immutable after decoding
// except for Chosen, which records the active branch selection.
type ModelOutput struct {
	Metadata   []string // [cid, rid, rcid] as assigned upstream
	Candidates []Candidate
	Chosen     int
}

// ChosenCandidate returns the currently selected candidate, or nil when the
// output holds none.
func (m *ModelOutput) ChosenCandidate() *Candidate {
	if len(m.Candidates) == 0 {
		return nil
	}
	if m.Chosen < 0 || m.Chosen >= len(m.Candidates) {
		return &m.Candidates[0]
	}
	return &m.Candidates[m.Chosen]
}

// Text returns the chosen candidate's text.
func (m *ModelOutput) Text() string {
	if c := m.ChosenCandidate(); c != nil {
		return c.Text
	}
	return ""
}

// RCID returns the chosen candidate's reply candidate id.
func (m *ModelOutput) RCID() string {
	if c := m.ChosenCandidate(); c != nil {
		return c.RCID
	}
	return ""
}

// Thoughts returns the chosen candidate's thinking text, when the model
// exposed one.
func (m *ModelOutput) Thoughts() string {
	if c := m.ChosenCandidate(); c != nil {
		return c.Thoughts
	}
	return ""
}

// Links returns the chosen candidate's harvested links.
func (m *ModelOutput) Links() []string {
	if c := m.ChosenCandidate(); c != nil {
		return c.Links
	}
	return nil
}

// Images returns the chosen candidate's images, web images first, with
// generated images converted to the WebImage shape.
func (m *ModelOutput) Images() []WebImage {
	c := m.ChosenCandidate()
	if c == nil {
		return nil
	}
	images := make([]WebImage, 0, len(c.WebImages)+len(c.GeneratedImages))
	images = append(images, c.WebImages...)
	for _, img := range c.GeneratedImages {
		images = append(images, WebImage{URL: img.URL, Title: img.Title, Alt: img.Alt})
	}
	return images
}

// CID returns the conversation id from the output metadata, if present.
func (m *ModelOutput) CID() string {
	if len(m.Metadata) > 0 {
		return m.Metadata[0]
	}
	return ""
}

// RID returns the reply id from the output metadata, if present.
func (m *ModelOutput) RID() string {
	if len(m.Metadata) > 1 {
		return m.Metadata[1]
	}
	return ""
}
