package api

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/dmateus/gemweb/internal/errors"
	"github.com/dmateus/gemweb/internal/models"
)

// extractOutput turns a decoded response body into a ModelOutput. Every
// positional access is checked, so a body that drifted from the expected
// shape surfaces as a ParseError instead of a panic.
func extractOutput(body gjson.Result, cookies models.CookieMap) (*models.ModelOutput, error) {
	list := body.Get(pathCandidateList)
	if !list.Exists() || list.Type == gjson.Null {
		return nil, apierrors.NewNoCandidates("response carries no candidates", pathCandidateList)
	}
	if !list.IsArray() {
		return nil, apierrors.NewMalformedResponseAt("candidate list is not an array", pathCandidateList)
	}
	entries := list.Array()
	if len(entries) == 0 {
		return nil, apierrors.NewNoCandidates("response carries no candidates", pathCandidateList)
	}

	imageCookies := cookies.Clone()
	candidates := make([]models.Candidate, 0, len(entries))
	for i, entry := range entries {
		cand, err := extractCandidate(entry, i, imageCookies)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, cand)
	}

	return &models.ModelOutput{
		Metadata:   extractMetadata(body),
		Candidates: candidates,
	}, nil
}

// extractMetadata reads the [cid, rid, rcid] tuple. Entries are passed
// through as assigned upstream; a missing tuple yields nil.
func extractMetadata(body gjson.Result) []string {
	meta := body.Get(pathMetadata)
	if !meta.IsArray() {
		return nil
	}
	elems := meta.Array()
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.String())
	}
	return out
}

func extractCandidate(entry gjson.Result, index int, cookies models.CookieMap) (models.Candidate, error) {
	at := func(rel string) string {
		if rel == "" {
			return fmt.Sprintf("%s.%d", pathCandidateList, index)
		}
		return fmt.Sprintf("%s.%d.%s", pathCandidateList, index, rel)
	}
	if !entry.IsArray() {
		return models.Candidate{}, apierrors.NewMalformedResponseAt("candidate is not an array", at(""))
	}

	rcid := entry.Get(pathCandRCID)
	if rcid.Type != gjson.String || rcid.String() == "" {
		return models.Candidate{}, apierrors.NewMalformedResponseAt("candidate has no rcid", at(pathCandRCID))
	}
	text := entry.Get(pathCandText)
	if !text.Exists() {
		return models.Candidate{}, apierrors.NewMalformedResponseAt("candidate has no text", at(pathCandText))
	}

	cand := models.Candidate{
		RCID:     rcid.String(),
		Text:     text.String(),
		Thoughts: entry.Get(pathCandThoughts).String(),
		Links:    extractLinks(entry),
	}

	if webList := entry.Get(pathCandWebImages); webList.IsArray() {
		for _, img := range webList.Array() {
			url := img.Get(pathWebImgURL).String()
			if url == "" {
				continue
			}
			cand.WebImages = append(cand.WebImages, models.WebImage{
				URL:   url,
				Title: img.Get(pathWebImgTitle).String(),
				Alt:   img.Get(pathWebImgAlt).String(),
			})
		}
	}

	if gate := entry.Get(pathCandGenGate); gate.Exists() && gate.Type != gjson.Null {
		genImages, err := extractGeneratedImages(entry, at, cookies)
		if err != nil {
			return models.Candidate{}, err
		}
		cand.GeneratedImages = genImages
	}

	return cand, nil
}

// extractGeneratedImages reads the generated-image block of a candidate that
// signalled image generation. The alt text list is shared across the batch
// and indexed per image, falling back to the first entry.
func extractGeneratedImages(entry gjson.Result, at func(string) string, cookies models.CookieMap) ([]models.GeneratedImage, error) {
	list := entry.Get(pathCandGenImages)
	if !list.Exists() || list.Type == gjson.Null {
		return nil, nil
	}
	if !list.IsArray() {
		return nil, apierrors.NewMalformedResponseAt("generated image list is not an array", at(pathCandGenImages))
	}

	var out []models.GeneratedImage
	for i, img := range list.Array() {
		url := img.Get(pathGenImgURL).String()
		if url == "" {
			return nil, apierrors.NewMalformedResponseAt("generated image has no url", at(fmt.Sprintf("%s.%d.%s", pathCandGenImages, i, pathGenImgURL)))
		}
		alt := img.Get(pathGenImgAlts + ".0").String()
		if indexed := img.Get(fmt.Sprintf("%s.%d", pathGenImgAlts, i)); indexed.Exists() {
			alt = indexed.String()
		}
		out = append(out, models.GeneratedImage{
			URL:     url,
			Title:   fmt.Sprintf("[Generated image %s]", img.Get(pathGenImgNum).String()),
			Alt:     alt,
			Cookies: cookies,
		})
	}
	return out, nil
}

// extractLinks walks the candidate tree and harvests every http(s) URL,
// skipping favicon assets and deduplicating in encounter order.
func extractLinks(entry gjson.Result) []string {
	var links []string
	seen := make(map[string]bool)
	var walk func(gjson.Result)
	walk = func(node gjson.Result) {
		switch {
		case node.IsArray():
			for _, child := range node.Array() {
				walk(child)
			}
		case node.Type == gjson.String:
			s := node.String()
			if strings.HasPrefix(s, "http") && !strings.Contains(s, "favicon") && !seen[s] {
				seen[s] = true
				links = append(links, s)
			}
		}
	}
	walk(entry)
	return links
}
