package coda

import "regexp"

// docLinkPattern matches the doc segment of a browser link, e.g.
// "https://coda.io/d/Title_dAbCDeFGH/Page_suX" or "https://coda.io/d/_dAbCDeFGH".
// The id follows the last "_d" of the segment and may itself contain "_".
var docLinkPattern = regexp.MustCompile(`/d/[^/?#]*_d([A-Za-z0-9_-]+)(?:[/?#]|$)`)

// DocIDFromBrowserLink extracts the doc id from a Coda browser link. It returns
// "" when the link does not point inside a doc.
func DocIDFromBrowserLink(link string) string {
	m := docLinkPattern.FindStringSubmatch(link)
	if len(m) < 2 {
		return ""
	}

	return m[1]
}
