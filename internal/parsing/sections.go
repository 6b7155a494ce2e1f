package parsing

import "strings"

// Document is the parsed view of unstructured resume text.
type Document struct {
	// Preamble holds lines that appear before the first recognized
	// section header (typically name and contact lines).
	Preamble []string
	Sections []Section
}

// Section is a recognized section heading and the entries beneath it.
type Section struct {
	// Heading is the header line as it appeared in the text.
	Heading string
	// Canonical is the vocabulary name the heading matched (e.g. "EXPERIENCE").
	Canonical string
	Entries   []Entry
}

// Entry is a grouping within a section. Entries with a Title were started
// by an entry-header line ("Software Engineer  2020-2022"); the anonymous
// leading entry of a section has an empty Title and collects loose lines.
type Entry struct {
	Title   string
	Date    string
	Bullets []string
	Lines   []string
}

// IsEmpty reports whether the entry carries no content at all.
func (e *Entry) IsEmpty() bool {
	return e.Title == "" && e.Date == "" && len(e.Bullets) == 0 && len(e.Lines) == 0
}

// ParseText runs the line-based heuristic parse over raw resume text.
// It never fails; irregular input simply produces a coarser document.
func ParseText(cfg *Config, text string) *Document {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	doc := &Document{}
	var section *Section
	var entry *Entry

	flushEntry := func() {
		if section != nil && entry != nil && !entry.IsEmpty() {
			section.Entries = append(section.Entries, *entry)
		}
		entry = &Entry{}
	}
	flushSection := func() {
		flushEntry()
		if section != nil {
			doc.Sections = append(doc.Sections, *section)
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if canonical, ok := cfg.matchSectionHeader(trimmed); ok {
			flushSection()
			section = &Section{Heading: trimmed, Canonical: canonical}
			entry = &Entry{}
			continue
		}

		if section == nil {
			doc.Preamble = append(doc.Preamble, trimmed)
			continue
		}

		content, isBullet := cfg.stripBulletMarker(trimmed)

		// An entry-header line starts a new entry whether or not it was
		// bulleted; "• Software Engineer  2020-2022" is a common shape.
		if m := cfg.EntryHeader.FindStringSubmatch(content); m != nil {
			flushEntry()
			entry.Title = strings.TrimSpace(m[1])
			entry.Date = strings.TrimSpace(m[2])
			continue
		}

		if isBullet {
			entry.Bullets = append(entry.Bullets, content)
		} else {
			entry.Lines = append(entry.Lines, content)
		}
	}
	flushSection()

	return doc
}

// Section returns the first parsed section matching the canonical name,
// or nil when the document has none.
func (d *Document) Section(canonical string) *Section {
	for i := range d.Sections {
		if d.Sections[i].Canonical == canonical {
			return &d.Sections[i]
		}
	}
	return nil
}

// matchSectionHeader reports whether the line is a section header and,
// if so, which canonical section it names.
func (c *Config) matchSectionHeader(line string) (string, bool) {
	if len(line) > c.MaxHeaderLen {
		return "", false
	}
	upper := strings.ToUpper(strings.TrimRight(line, ":"))
	for _, vocab := range c.Sections {
		for _, kw := range vocab.Keywords {
			if upper == kw || strings.HasPrefix(upper, kw+" ") || strings.HasSuffix(upper, " "+kw) {
				return vocab.Canonical, true
			}
		}
	}
	return "", false
}

// stripBulletMarker removes a leading bullet marker, returning the content
// and whether a marker was present.
func (c *Config) stripBulletMarker(line string) (string, bool) {
	for _, marker := range c.BulletMarkers {
		if strings.HasPrefix(line, marker+" ") {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	return line, false
}
