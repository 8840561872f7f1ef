// Package wizard implements the model setup wizard: the page graph, the
// channel booking that keeps pages from assigning the same output twice,
// and the synthesis of mixes and timers from the collected answers.
package wizard

import (
	"github.com/mark3labs/txcompanion/internal/logger"
)

var log = logger.Named("wizard")

// Wizard drives a session through its pages. Navigation follows QWizard
// semantics: going back cleans up the page being left and keeps the
// previous page's answers without re-initializing it.
type Wizard struct {
	session *Session
	pages   map[PageID]Page
	history []PageID
	done    bool
}

// New builds a wizard for s. Call Start before navigating.
func New(s *Session) *Wizard {
	return &Wizard{session: s, pages: newPages(s)}
}

// Session returns the session being edited.
func (w *Wizard) Session() *Session { return w.session }

// Page returns the page with id, or nil.
func (w *Wizard) Page(id PageID) Page { return w.pages[id] }

// Start initializes the first page.
func (w *Wizard) Start() Page {
	w.history = []PageID{PageModels}
	w.done = false
	p := w.pages[PageModels]
	p.Initialize()
	log.Debug("start on %s", PageModels)
	return p
}

// Current returns the active page, or nil before Start.
func (w *Wizard) Current() Page {
	if len(w.history) == 0 {
		return nil
	}
	return w.pages[w.history[len(w.history)-1]]
}

// History returns the visited pages, oldest first.
func (w *Wizard) History() []PageID {
	return append([]PageID(nil), w.history...)
}

// Done reports whether the terminal page validated.
func (w *Wizard) Done() bool { return w.done }

// Next validates the active page and moves to its successor. It returns
// false when validation refused the advance; the page's Problem says why.
// Validating the terminal page completes the wizard.
func (w *Wizard) Next() bool {
	cur := w.Current()
	if cur == nil || w.done {
		return false
	}
	if !cur.Validate() {
		// drop the partial bookings of a half-validated page
		w.session.Book.Release(cur.ID())
		log.Debug("%s refused advance: %s", cur.ID(), cur.Problem())
		return false
	}

	next := cur.NextID()
	if next == PageNone {
		w.done = true
		log.Info("wizard completed for %q", w.session.Name)
		return true
	}
	p, ok := w.pages[next]
	if !ok {
		log.Error("page %s has no successor %s", cur.ID(), next)
		return false
	}
	p.Initialize()
	w.history = append(w.history, next)
	log.Debug("%s -> %s (%d channels free)", cur.ID(), next, w.session.Book.CountFree())
	return true
}

// Back cleans up the active page and returns to the previous one. It
// returns false on the first page.
func (w *Wizard) Back() bool {
	if len(w.history) < 2 {
		return false
	}
	cur := w.Current()
	cur.Cleanup()
	w.history = w.history[:len(w.history)-1]
	w.done = false
	w.session.Completed = false
	log.Debug("back from %s to %s", cur.ID(), w.Current().ID())
	return true
}
