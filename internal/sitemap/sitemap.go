// Package sitemap renders the sitemap.xml document from the current set of
// published slugs. The handler caches the rendered document briefly and every
// content mutation invalidates it, so new slugs appear right away.
package sitemap

import "encoding/xml"

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type staticRoute struct {
	path     string
	priority string
}

var staticRoutes = []staticRoute{
	{"/", "1.0"},
	{"/about", "0.7"},
	{"/services", "0.9"},
	{"/publications", "0.8"},
	{"/newsroom", "0.8"},
	{"/careers", "0.7"},
	{"/contact", "0.6"},
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Build assembles the url set: static routes first, then service and
// publication detail pages. baseURL must not end with a slash.
func Build(baseURL string, serviceSlugs, publicationSlugs []string) URLSet {
	urls := make([]URL, 0, len(staticRoutes)+len(serviceSlugs)+len(publicationSlugs))
	for _, route := range staticRoutes {
		urls = append(urls, URL{
			Loc:        baseURL + route.path,
			ChangeFreq: "weekly",
			Priority:   route.priority,
		})
	}
	for _, slug := range serviceSlugs {
		urls = append(urls, URL{
			Loc:        baseURL + "/services/" + slug,
			ChangeFreq: "monthly",
			Priority:   "0.8",
		})
	}
	for _, slug := range publicationSlugs {
		urls = append(urls, URL{
			Loc:        baseURL + "/publications/" + slug,
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}
	return URLSet{Xmlns: xmlns, URLs: urls}
}
