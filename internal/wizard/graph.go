package wizard

import "fmt"

// PageID identifies a wizard page.
type PageID int

const (
	PageNone PageID = iota - 1
	PageModels
	PageThrottle
	PageWingtypes
	PageAilerons
	PageFlaps
	PageAirbrakes
	PageElevons
	PageRudder
	PageTails
	PageTail
	PageVtail
	PageSimpletail
	PageCyclic
	PageGyro
	PageFlybar
	PageFblheli
	PageHelictrl
	PageMultirotor
	PageOptions
	PageConclusion
)

var pageNames = map[PageID]string{
	PageNone:       "none",
	PageModels:     "models",
	PageThrottle:   "throttle",
	PageWingtypes:  "wingtype",
	PageAilerons:   "ailerons",
	PageFlaps:      "flaps",
	PageAirbrakes:  "airbrakes",
	PageElevons:    "elevons",
	PageRudder:     "rudder",
	PageTails:      "tails",
	PageTail:       "tail",
	PageVtail:      "vtail",
	PageSimpletail: "simpletail",
	PageCyclic:     "cyclic",
	PageGyro:       "gyro",
	PageFlybar:     "flybar",
	PageFblheli:    "fblheli",
	PageHelictrl:   "helictrl",
	PageMultirotor: "multirotor",
	PageOptions:    "options",
	PageConclusion: "conclusion",
}

// String returns the stable page key used in answers files.
func (p PageID) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return fmt.Sprintf("page(%d)", int(p))
}

// ParsePageID is the inverse of PageID.String.
func ParsePageID(name string) (PageID, error) {
	for id, n := range pageNames {
		if n == name && id != PageNone {
			return id, nil
		}
	}
	return PageNone, fmt.Errorf("unknown wizard page %q", name)
}

// edge is one row of the page graph. An empty choice is the page's
// default edge.
type edge struct {
	from   PageID
	choice string
	to     PageID
}

var graph = []edge{
	{PageModels, "plane", PageThrottle},
	{PageModels, "multirotor", PageMultirotor},
	{PageModels, "helicopter", PageCyclic},
	{PageModels, "flight-sim", PageMultirotor},

	{PageThrottle, "", PageWingtypes},

	{PageWingtypes, "standard", PageAilerons},
	{PageWingtypes, "delta", PageElevons},

	{PageAilerons, "", PageFlaps},
	{PageFlaps, "", PageAirbrakes},
	{PageAirbrakes, "", PageTails},
	{PageElevons, "", PageRudder},
	{PageRudder, "", PageOptions},

	{PageTails, "standard", PageTail},
	{PageTails, "elevator", PageSimpletail},
	{PageTails, "vtail", PageVtail},

	{PageTail, "", PageOptions},
	{PageVtail, "", PageOptions},
	{PageSimpletail, "", PageOptions},

	{PageCyclic, "", PageGyro},
	{PageGyro, "", PageFlybar},
	{PageFlybar, "flybar", PageHelictrl},
	{PageFlybar, "flybarless", PageFblheli},
	{PageHelictrl, "", PageOptions},
	{PageFblheli, "", PageOptions},

	{PageMultirotor, "", PageOptions},
	{PageOptions, "", PageConclusion},
}

// nextPage looks up the edge for (from, choice), falling back to the
// page's default edge. PageNone means from is terminal.
func nextPage(from PageID, choice string) PageID {
	fallback := PageNone
	for _, e := range graph {
		if e.from != from {
			continue
		}
		if e.choice == choice {
			return e.to
		}
		if e.choice == "" {
			fallback = e.to
		}
	}
	return fallback
}
