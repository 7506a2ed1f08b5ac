package model

// Booth is one circle's merged record for a single event: the days it
// attends, the links it advertises and the tags it is filed under.  It is
// built from one attendance row and then enriched from the links and tags
// files.
//
// Fields:
//
//	ID             – numeric id from the first attendance column.
//	Circle         – trimmed circle name; the join key across all files.
//	Attendance     – one entry per day the circle has a location.
//	CoverImageName – file name of the circle's cover image.
//	Links          – external links in links-file order.
//	Tags           – tags in tags-file order.
type Booth struct {
	ID             int          `json:"id"`
	Circle         string       `json:"circle"`
	Attendance     []Attendance `json:"attendance"`
	CoverImageName string       `json:"coverImageName"`
	Links          []Link       `json:"links"`
	Tags           []string     `json:"tags"`
}

// Attendance records where a circle sits on a given day.
type Attendance struct {
	Day        int    `json:"day"`        // 1-based day number
	Location   string `json:"location"`   // booth location code
	IsBorrowed bool   `json:"isBorrowed"` // location is borrowed from another circle
}

// Link is a named external URL for a circle.
type Link struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

// NewBooth returns a Booth with empty, non-nil collections so it encodes
// as [] rather than null.
func NewBooth(id int, circle, coverImageName string) *Booth {
	return &Booth{
		ID:             id,
		Circle:         circle,
		Attendance:     []Attendance{},
		CoverImageName: coverImageName,
		Links:          []Link{},
		Tags:           []string{},
	}
}

// AttendsDay reports whether the booth has an attendance entry for day.
func (b Booth) AttendsDay(day int) bool {
	for _, a := range b.Attendance {
		if a.Day == day {
			return true
		}
	}
	return false
}

// HasTag reports whether tag is one of the booth's tags.
func (b Booth) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
