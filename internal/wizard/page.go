package wizard

// Page is one step of the model wizard.
type Page interface {
	ID() PageID
	Title() string
	// Text is the page's prompt.
	Text() string
	Help() string
	Fields() []Field
	// Notice is an advisory message shown while the page is active.
	Notice() string
	// Problem explains why the last Validate refused the advance.
	Problem() string

	// Initialize clears stale prebookings and offers channels.
	Initialize()
	// Validate commits the page's answers and bookings. False keeps the
	// wizard on this page.
	Validate() bool
	// Cleanup releases the page's bookings on back navigation.
	Cleanup()
	NextID() PageID
}

// page carries the behaviour every wizard page shares. Pages embed it and
// override what they need.
type page struct {
	id      PageID
	title   string
	text    string
	help    string
	s       *Session
	fields  []Field
	notice  string
	problem string
}

func (p *page) ID() PageID      { return p.id }
func (p *page) Title() string   { return p.title }
func (p *page) Text() string    { return p.text }
func (p *page) Help() string    { return p.help }
func (p *page) Fields() []Field { return p.fields }
func (p *page) Notice() string  { return p.notice }
func (p *page) Problem() string { return p.problem }

func (p *page) Initialize() { p.begin() }

func (p *page) Validate() bool {
	p.problem = ""
	p.s.Book.Release(p.id)
	return true
}

func (p *page) Cleanup() {
	p.s.Book.Release(p.id)
	p.notice = ""
}

func (p *page) NextID() PageID { return nextPage(p.id, "") }

// begin voids prebookings from any earlier page display.
func (p *page) begin() {
	p.s.Book.ReleasePrebookings()
	p.problem = ""
}

// populate offers every free channel on cs and preselects preferred when
// it is free. A selection already proposed by an earlier control on the
// page is replaced by the last free channel nobody proposed. The final
// selection is prebooked.
func (p *page) populate(cs *ChannelSelect, preferred int) {
	book := p.s.Book
	cs.Offered = nil
	cs.Selected = -1
	for i := 0; i < book.Len(); i++ {
		if !book.Slot(i).Free() {
			continue
		}
		cs.Offered = append(cs.Offered, i)
		if i == preferred {
			cs.Selected = i
		}
	}
	if len(cs.Offered) == 0 {
		return
	}
	if cs.Selected < 0 {
		cs.Selected = cs.Offered[0]
	}
	if book.Prebooked(cs.Selected) {
		for i := len(cs.Offered) - 1; i >= 0; i-- {
			if !book.Prebooked(cs.Offered[i]) {
				cs.Selected = cs.Offered[i]
				break
			}
		}
	}
	book.Prebook(cs.Selected)
}

// book commits cs with the given payload. A disabled or empty selector
// fails.
func (p *page) book(cs *ChannelSelect, primary, secondary Contribution) bool {
	if cs.Selected < 0 {
		p.problem = cs.Label() + ": no channel available"
		return false
	}
	if !p.s.Book.Book(cs.Selected, p.id, primary, secondary) {
		p.problem = cs.Label() + ": channel " + cs.Value() + " is already in use"
		return false
	}
	return true
}

func (p *page) fail(msg string) bool {
	p.problem = msg
	return false
}
