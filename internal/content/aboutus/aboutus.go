// Package aboutus extracts the structured "Quiénes Somos" sections from the
// page's rich-text body. The backend does not guarantee stable block
// ordering, so extraction is keyed on heading text and sibling traversal,
// never on positional offsets. Every section is optional: a missing heading
// yields an empty sub-structure, not an error.
package aboutus

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SectionHeadings holds the heading text each section extractor matches
// against (case-insensitive substring). Kept configurable to isolate
// content-format drift from the parsing logic.
type SectionHeadings struct {
	History string
	Mission string
	Vision  string
	Values  string
	Team    string
}

// DefaultHeadings returns the headings the backend currently publishes.
func DefaultHeadings() SectionHeadings {
	return SectionHeadings{
		History: "Nuestra Historia",
		Mission: "Nuestra Misión",
		Vision:  "Nuestra Visión",
		Values:  "Nuestros Valores",
		Team:    "Nuestro Equipo",
	}
}

type Data struct {
	Hero          Hero    `json:"hero"`
	History       History `json:"historia"`
	MissionVision Items   `json:"misionVision"`
	Values        Items   `json:"valores"`
	Team          Team    `json:"equipo"`
	Stats         Stats   `json:"stats"`
}

type Hero struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type History struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
	Image string `json:"image,omitempty"`
	Badge *Badge `json:"badge,omitempty"`
}

type Badge struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Items struct {
	Items []Item `json:"items"`
}

type Member struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image,omitempty"`
}

type Team struct {
	Members []Member `json:"members"`
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Stats struct {
	Items []Stat `json:"items"`
}

// Parser extracts Data from page HTML.
type Parser struct {
	headings SectionHeadings
}

func NewParser(headings SectionHeadings) *Parser {
	return &Parser{headings: headings}
}

// minStatsPairs is the number of value/label pairs a columns block needs to
// be considered the stats strip.
const minStatsPairs = 3

var whitespacePattern = regexp.MustCompile(`\s+`)

// cleanText normalizes non-breaking spaces and collapses runs of whitespace.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// Parse extracts every section from the page body. The returned Data always
// has a value for each section; sections whose heading is absent are empty.
func (p *Parser) Parse(contentHTML, pageTitle string) Data {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		// Unparseable body behaves like an empty one.
		return Data{Hero: Hero{Title: cleanText(pageTitle)}}
	}

	return Data{
		Hero:          p.parseHero(doc, pageTitle),
		History:       p.parseHistory(doc),
		MissionVision: p.parseMissionVision(doc),
		Values:        p.parseValues(doc),
		Team:          p.parseTeam(doc),
		Stats:         p.parseStats(doc),
	}
}

// findHeading returns the first heading of the given tag whose text contains
// needle, case-insensitively, or nil.
func findHeading(doc *goquery.Document, tag, needle string) *goquery.Selection {
	lowered := strings.ToLower(needle)
	var found *goquery.Selection
	doc.Find(tag).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(cleanText(sel.Text())), lowered) {
			found = sel
			return false
		}
		return true
	})
	return found
}

// firstImageSrc returns the src of the first img inside scope, or "".
func firstImageSrc(scope *goquery.Selection) string {
	return strings.TrimSpace(scope.Find("img").First().AttrOr("src", ""))
}

// paragraphsHTML rebuilds the non-empty paragraphs of scope as clean HTML.
func paragraphsHTML(scope *goquery.Selection) string {
	var parts []string
	scope.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if cleanText(sel.Text()) == "" {
			return
		}
		inner, err := sel.Html()
		if err != nil {
			return
		}
		parts = append(parts, fmt.Sprintf("<p>%s</p>", inner))
	})
	return strings.Join(parts, "\n")
}

// cardFromColumns finds the first column carrying an image, a heading and a
// paragraph: the founder/member card shape.
func cardFromColumns(columns *goquery.Selection) *Member {
	col := columns.Find(".wp-block-column").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		hasImg := sel.Find("img").Length() > 0
		hasHeading := sel.Find("h2, h3").Length() > 0
		hasText := cleanText(sel.Find("p").First().Text()) != ""
		return hasImg && hasHeading && hasText
	}).First()

	if col.Length() == 0 {
		return nil
	}

	name := cleanText(col.Find("h2, h3").First().Text())
	if name == "" {
		return nil
	}
	return &Member{
		Name:  name,
		Role:  cleanText(col.Find("p").First().Text()),
		Image: firstImageSrc(col),
	}
}

func (p *Parser) parseHero(doc *goquery.Document, pageTitle string) Hero {
	hero := Hero{Title: cleanText(pageTitle)}
	if hero.Title == "" {
		hero.Title = "Quiénes Somos"
	}

	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := cleanText(sel.Text()); text != "" {
			hero.Description = text
			return false
		}
		return true
	})
	return hero
}

func (p *Parser) parseHistory(doc *goquery.Document) History {
	history := History{Title: p.headings.History}

	heading := findHeading(doc, "h2", p.headings.History)
	if heading == nil {
		return history
	}

	group := heading.Closest(".wp-block-group")
	if group.Length() == 0 {
		group = heading.Parent()
	}

	history.HTML = paragraphsHTML(group)
	history.Image = firstImageSrc(group)

	// The founder card usually follows the group as a columns block; fall
	// back to scanning every following sibling since the backend sometimes
	// interleaves empty nodes.
	card := cardFromColumns(group.NextAllFiltered(".wp-block-columns").First())
	if card == nil {
		group.NextAll().EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if !sel.HasClass("wp-block-columns") {
				return true
			}
			card = cardFromColumns(sel)
			return card == nil
		})
	}
	if card != nil {
		if history.Image == "" {
			history.Image = card.Image
		}
		history.Badge = &Badge{Name: card.Name, Role: card.Role}
	}

	return history
}

func (p *Parser) parseMissionVision(doc *goquery.Document) Items {
	var items []Item
	for _, headingText := range []string{p.headings.Mission, p.headings.Vision} {
		heading := findHeading(doc, "h3", headingText)
		if heading == nil {
			continue
		}
		description := cleanText(heading.Parent().Find("p").First().Text())
		if description == "" {
			continue
		}
		items = append(items, Item{
			Title:       cleanText(heading.Text()),
			Description: description,
		})
	}
	return Items{Items: items}
}

func (p *Parser) parseValues(doc *goquery.Document) Items {
	heading := findHeading(doc, "h2", p.headings.Values)
	if heading == nil {
		return Items{}
	}

	container := heading.NextAllFiltered(".wp-block-group").First()
	if container.Length() == 0 {
		container = heading.Parent()
	}

	var items []Item
	container.Find(".wp-block-column").Each(func(_ int, col *goquery.Selection) {
		title := cleanText(col.Find("h3").First().Text())
		description := cleanText(col.Find("p").First().Text())
		if title == "" || description == "" {
			return
		}
		items = append(items, Item{Title: title, Description: description})
	})
	return Items{Items: items}
}

func (p *Parser) parseTeam(doc *goquery.Document) Team {
	heading := findHeading(doc, "h2", p.headings.Team)
	if heading == nil {
		return Team{}
	}

	columns := heading.NextAllFiltered(".wp-block-columns").First()
	if columns.Length() == 0 {
		return Team{}
	}

	var members []Member
	columns.Find(".wp-block-column").Each(func(_ int, col *goquery.Selection) {
		name := cleanText(col.Find("h3").First().Text())
		if name == "" {
			return
		}
		members = append(members, Member{
			Name:  name,
			Role:  cleanText(col.Find("p").First().Text()),
			Image: firstImageSrc(col),
		})
	})
	return Team{Members: members}
}

// parseStats takes the last columns block holding at least minStatsPairs
// value/label pairs; the stats strip has no heading of its own.
func (p *Parser) parseStats(doc *goquery.Document) Stats {
	var last []Stat
	doc.Find(".wp-block-columns").Each(func(_ int, columns *goquery.Selection) {
		var pairs []Stat
		columns.Find(".wp-block-column").Each(func(_ int, col *goquery.Selection) {
			value := cleanText(col.Find("h2").First().Text())
			label := cleanText(col.Find("p").First().Text())
			if value == "" || label == "" {
				return
			}
			pairs = append(pairs, Stat{Value: value, Label: label})
		})
		if len(pairs) >= minStatsPairs {
			last = pairs
		}
	})
	return Stats{Items: last}
}
