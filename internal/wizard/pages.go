package wizard

import (
	"github.com/mark3labs/txcompanion/internal/model"
)

var yesNo = []Option{{"yes", "Yes"}, {"no", "No"}}

var channelCount = []Option{
	{"none", "No"},
	{"single", "Yes, controlled by a single channel"},
	{"two", "Yes, controlled by two channels"},
}

// newPages builds every page of the wizard bound to s.
func newPages(s *Session) map[PageID]Page {
	pages := []Page{
		newModelsPage(s),
		newThrottlePage(s),
		newWingtypePage(s),
		newAileronsPage(s),
		newFlapsPage(s),
		newAirbrakesPage(s),
		newElevonsPage(s),
		newRudderPage(s),
		newTailsPage(s),
		newTailPage(s),
		newVtailPage(s),
		newSimpletailPage(s),
		newCyclicPage(s),
		newGyroPage(s),
		newFlybarPage(s),
		newHeliPage(s, PageFblheli),
		newHeliPage(s, PageHelictrl),
		newMultirotorPage(s),
		newOptionsPage(s),
		newConclusionPage(s),
	}
	out := make(map[PageID]Page, len(pages))
	for _, p := range pages {
		out[p.ID()] = p
	}
	return out
}

type modelsPage struct {
	page
	name    *TextField
	vehicle *Choice
}

func newModelsPage(s *Session) *modelsPage {
	p := &modelsPage{
		page: page{id: PageModels, s: s, title: "Model Type",
			text: "Enter model name and model type.",
			help: "Enter a name for your model and select model type."},
		name: &TextField{field: field{key: "name", label: "Model Name"}, MaxLen: s.nameLen()},
		vehicle: newChoice("vehicle", "Model Type",
			Option{string(model.VehiclePlane), "Plane"},
			Option{string(model.VehicleMultirotor), "Multirotor"},
			Option{string(model.VehicleHelicopter), "Helicopter"},
			Option{string(model.VehicleFlightSim), "Flight Simulator"},
		),
	}
	p.fields = []Field{p.name, p.vehicle}
	return p
}

func (p *modelsPage) Initialize() {
	p.begin()
	p.name.Text = p.s.Name
}

func (p *modelsPage) Validate() bool {
	p.page.Validate()
	name := SanitizeName(p.name.Text, p.s.nameLen())
	if name == "" {
		return p.fail("A model name is required")
	}
	p.name.Text = name
	p.s.Name = name
	p.s.Vehicle = model.Vehicle(p.vehicle.SelectedKey())
	return true
}

func (p *modelsPage) NextID() PageID { return nextPage(p.id, p.vehicle.SelectedKey()) }

type throttlePage struct {
	page
	motor   *Choice
	channel *ChannelSelect
	cut     *SwitchSelect
}

func newThrottlePage(s *Session) *throttlePage {
	p := &throttlePage{
		page: page{id: PageThrottle, s: s, title: "Throttle",
			text: "Has your model got a motor or an engine?",
			help: "Select the receiver channel that is connected to your ESC or throttle servo.\n\n" +
				"Throttle - Spektrum: CH1, Futaba: CH3.\n\n" +
				"For electric motors, a simple throttle cut safety feature can be applied by selecting a switch and position.\n\n" +
				"It is strongly recommended a more sophisticated throttle safety feature is configured after your model has been created. " +
				"Various methods are discussed in the forums."},
		motor: newChoice("motor", "Motor", yesNo...),
	}
	hasMotor := func() bool { return p.motor.Is("yes") }
	p.channel = newChannelSelect("channel", "Throttle Channel", hasMotor)
	p.cut = newSwitchSelect("cut_switch", "Throttle Cut Switch", s.switchChoices(), hasMotor)
	p.fields = []Field{p.motor, p.channel, p.cut}
	return p
}

func (p *throttlePage) Initialize() {
	p.begin()
	p.populate(p.channel, p.s.defaultChannel(InputThrottle))
}

func (p *throttlePage) Validate() bool {
	p.page.Validate()
	if !p.motor.Is("yes") {
		return true
	}
	var cut Contribution
	if sw := p.cut.Switch(); !sw.IsZero() {
		cut = Contribution{Input: InputThrottleCut, Weight: -100, Switch: sw}
	}
	return p.book(p.channel, Contribution{Input: InputThrottle, Weight: 100}, cut)
}

type wingtypePage struct {
	page
	wing *Choice
}

func newWingtypePage(s *Session) *wingtypePage {
	p := &wingtypePage{
		page: page{id: PageWingtypes, s: s, title: "Wing Type",
			text: "Is your model a flying wing/deltawing or has it a standard wing configuration?",
			help: "Most aircraft have a main wing and a tail with control surfaces. Flying wings and delta winged aircraft only have a single wing. " +
				"The main control surface on a standard wing controls the roll of the aircraft. This surface is called an aileron.\n\n" +
				"The control surface of a flying wing/delta wing controls both roll and pitch. This surface is called an elevon."},
		wing: newChoice("wing", "Wing Type",
			Option{"standard", "Standard Wing"},
			Option{"delta", "Flying Wing / Deltawing"},
		),
	}
	p.fields = []Field{p.wing}
	return p
}

func (p *wingtypePage) NextID() PageID { return nextPage(p.id, p.wing.SelectedKey()) }

// pairPage is the shape shared by the ailerons, flaps and airbrakes pages:
// none, one or two channels, optionally gated by a required switch.
type pairPage struct {
	page
	count   *Choice
	first   *ChannelSelect
	second  *ChannelSelect
	sw      *SwitchSelect
	input   Input
	weights [2]int
	// preferred returns the preselection for the first selector.
	preferred func() int
}

func newPairPage(s *Session, id PageID, noun string, input Input, withSwitch bool) *pairPage {
	p := &pairPage{
		page:  page{id: id, s: s},
		count: newChoice(pageNames[id], "Has "+noun, channelCount...),
		input: input,
	}
	used := func() bool { return !p.count.Is("none") }
	two := func() bool { return p.count.Is("two") }
	p.first = newChannelSelect(pageNames[id]+"1", noun+" Channel", used)
	p.second = newChannelSelect(pageNames[id]+"2", "Second "+noun+" Channel", two)
	p.fields = []Field{p.count, p.first, p.second}
	if withSwitch {
		p.sw = newSwitchSelect("switch", noun+" Switch", s.switchChoices(), used)
		p.fields = append(p.fields, p.sw)
	}
	p.preferred = func() int { return s.Book.NextFree(4) }
	return p
}

func (p *pairPage) Initialize() {
	p.begin()
	p.populate(p.first, p.preferred())
	p.populate(p.second, p.s.Book.NextFree(4))
}

func (p *pairPage) Validate() bool {
	p.page.Validate()
	if p.count.Is("none") {
		return true
	}
	var sw model.Switch
	if p.sw != nil {
		sw = p.sw.Switch()
		if sw.IsZero() {
			return p.fail(p.sw.Label() + " is required")
		}
	}
	if !p.book(p.first, Contribution{Input: p.input, Weight: p.weights[0], Switch: sw}, Contribution{}) {
		return false
	}
	if !p.count.Is("two") {
		return true
	}
	return p.book(p.second, Contribution{Input: p.input, Weight: p.weights[1], Switch: sw}, Contribution{})
}

func newAileronsPage(s *Session) *pairPage {
	p := newPairPage(s, PageAilerons, "Aileron", InputAilerons, false)
	p.title = "Ailerons"
	p.text = "Has your model got ailerons?"
	p.help = "Models use one or two channels to control the ailerons.\n\n" +
		"A so called Y-cable can be used to connect a single receiver channel to two separate aileron servos. " +
		"If your servos are connected by a Y-cable you should select the single-servo option.\n\n" +
		"Aileron - Spektrum: CH2, Futaba: CH1"
	p.weights = [2]int{100, -100}
	p.preferred = func() int { return s.defaultChannel(InputAilerons) }
	return p
}

func newFlapsPage(s *Session) *pairPage {
	p := newPairPage(s, PageFlaps, "Flap", InputFlaps, true)
	p.title = "Flaps"
	p.text = "Has your model got flaps?"
	p.help = "This wizard assumes that your flaps are controlled by a switch. " +
		"If your flaps are controlled by a potentiometer you can change that manually later."
	p.weights = [2]int{100, 100}
	return p
}

func newAirbrakesPage(s *Session) *pairPage {
	p := newPairPage(s, PageAirbrakes, "Airbrake", InputAirbrakes, true)
	p.title = "Airbrakes"
	p.text = "Has your model got airbrakes?"
	p.help = "Air brakes are used to reduce the speed of advanced sail planes.\n\n" +
		"They are very uncommon on other types of planes."
	p.weights = [2]int{100, 100}
	return p
}

// mixedPairPage books two channels that each carry two inputs: elevons
// and v-tails.
type mixedPairPage struct {
	page
	first     *ChannelSelect
	second    *ChannelSelect
	firstPref Input
	secPref   Input
	firstMix  [2]Contribution
	secondMix [2]Contribution
}

func (p *mixedPairPage) Initialize() {
	p.begin()
	p.populate(p.first, p.s.defaultChannel(p.firstPref))
	p.populate(p.second, p.s.defaultChannel(p.secPref))
}

func (p *mixedPairPage) Validate() bool {
	p.page.Validate()
	return p.book(p.first, p.firstMix[0], p.firstMix[1]) &&
		p.book(p.second, p.secondMix[0], p.secondMix[1])
}

func newElevonsPage(s *Session) *mixedPairPage {
	p := &mixedPairPage{
		page: page{id: PageElevons, s: s, title: "Flying-wing / Delta-wing",
			text: "Select the elevons channels",
			help: "Models use two channels to control the elevons.\n\nSelect these two channels."},
		first:     newChannelSelect("elevon1", "First Elevon Channel", nil),
		second:    newChannelSelect("elevon2", "Second Elevon Channel", nil),
		firstPref: InputElevator,
		secPref:   InputAilerons,
		firstMix:  [2]Contribution{{Input: InputAilerons, Weight: 50}, {Input: InputElevator, Weight: 50}},
		secondMix: [2]Contribution{{Input: InputAilerons, Weight: -50}, {Input: InputElevator, Weight: 50}},
	}
	p.fields = []Field{p.first, p.second}
	return p
}

func newVtailPage(s *Session) *mixedPairPage {
	p := &mixedPairPage{
		page: page{id: PageVtail, s: s, title: "V-Tail",
			text: "Select channels for tail control.",
			help: "Select the Rudder and Elevator channels.\n\n" +
				"Rudder - Spektrum: CH4, Futaba: CH4\n" +
				"Elevator - Spektrum: CH3, Futaba: CH2"},
		first:     newChannelSelect("tail1", "First Tail Channel", nil),
		second:    newChannelSelect("tail2", "Second Tail Channel", nil),
		firstPref: InputElevator,
		secPref:   InputAilerons,
		firstMix:  [2]Contribution{{Input: InputElevator, Weight: 50}, {Input: InputRudder, Weight: 50}},
		secondMix: [2]Contribution{{Input: InputElevator, Weight: 50}, {Input: InputRudder, Weight: -50}},
	}
	p.fields = []Field{p.first, p.second}
	return p
}

type rudderPage struct {
	page
	rudder  *Choice
	channel *ChannelSelect
}

func newRudderPage(s *Session) *rudderPage {
	p := &rudderPage{
		page: page{id: PageRudder, s: s, title: "Rudder",
			text: "Does your model have a rudder?",
			help: "Select the receiver channel that is connected to your rudder.\n\n" +
				"Rudder - Spektrum: CH4, Futaba: CH4"},
		rudder: newChoice("rudder", "Rudder", yesNo...),
	}
	p.rudder.Selected = 1
	p.channel = newChannelSelect("channel", "Rudder Channel", func() bool { return p.rudder.Is("yes") })
	p.fields = []Field{p.rudder, p.channel}
	return p
}

func (p *rudderPage) Initialize() {
	p.begin()
	p.populate(p.channel, p.s.defaultChannel(InputRudder))
}

func (p *rudderPage) Validate() bool {
	p.page.Validate()
	if !p.rudder.Is("yes") {
		return true
	}
	return p.book(p.channel, Contribution{Input: InputRudder, Weight: 100}, Contribution{})
}

type tailsPage struct {
	page
	tail *Choice
}

func newTailsPage(s *Session) *tailsPage {
	p := &tailsPage{
		page: page{id: PageTails, s: s, title: "Tail Type",
			text: "Select which type of tail your model is equipped with.",
			help: "Select the tail type of your plane."},
		tail: newChoice("tail", "Tail Type",
			Option{"standard", "Elevator and Rudder"},
			Option{"elevator", "Only Elevator"},
			Option{"vtail", "V-tail"},
		),
	}
	p.fields = []Field{p.tail}
	return p
}

func (p *tailsPage) NextID() PageID { return nextPage(p.id, p.tail.SelectedKey()) }

type tailPage struct {
	page
	rudder   *ChannelSelect
	elevator *ChannelSelect
}

func newTailPage(s *Session) *tailPage {
	p := &tailPage{
		page: page{id: PageTail, s: s, title: "Tail",
			text: "Select channels for tail control.",
			help: "Select the Rudder and Elevator channels.\n\n" +
				"Rudder - Spektrum: CH4, Futaba: CH4\n" +
				"Elevator - Spektrum: CH3, Futaba: CH2"},
		rudder:   newChannelSelect("rudder", "Rudder Channel", nil),
		elevator: newChannelSelect("elevator", "Elevator Channel", nil),
	}
	p.fields = []Field{p.rudder, p.elevator}
	return p
}

func (p *tailPage) Initialize() {
	p.begin()
	p.populate(p.elevator, p.s.defaultChannel(InputElevator))
	p.populate(p.rudder, p.s.defaultChannel(InputRudder))
	p.notice = ""
	if p.s.Book.CountFree() < 2 {
		p.notice = "Only one channel still available!\nYou probably should configure your model without using the wizard."
	}
}

func (p *tailPage) Validate() bool {
	p.page.Validate()
	return p.book(p.elevator, Contribution{Input: InputElevator, Weight: 100}, Contribution{}) &&
		p.book(p.rudder, Contribution{Input: InputRudder, Weight: 100}, Contribution{})
}

type simpletailPage struct {
	page
	elevator *ChannelSelect
}

func newSimpletailPage(s *Session) *simpletailPage {
	p := &simpletailPage{
		page: page{id: PageSimpletail, s: s, title: "Tail",
			text: "Select elevator channel.",
			help: "Select the Elevator channel.\n\nElevator - Spektrum: CH3, Futaba: CH2"},
		elevator: newChannelSelect("elevator", "Elevator Channel", nil),
	}
	p.fields = []Field{p.elevator}
	return p
}

func (p *simpletailPage) Initialize() {
	p.begin()
	p.populate(p.elevator, p.s.defaultChannel(InputElevator))
}

func (p *simpletailPage) Validate() bool {
	p.page.Validate()
	return p.book(p.elevator, Contribution{Input: InputElevator, Weight: 100}, Contribution{})
}

type cyclicPage struct {
	page
	swash *Choice
}

func newCyclicPage(s *Session) *cyclicPage {
	p := &cyclicPage{
		page: page{id: PageCyclic, s: s, title: "Cyclic",
			text: "Which type of swash control is installed in your helicopter?",
			help: "Select the swash plate geometry. The swash mixing itself is set up on the radio after the model is created."},
		swash: newChoice("swash", "Swash Type",
			Option{"90", "90"}, Option{"120", "120"}, Option{"120x", "120x"}, Option{"140", "140"}),
	}
	p.fields = []Field{p.swash}
	return p
}

func (p *cyclicPage) Validate() bool {
	p.page.Validate()
	p.s.Heli.Swash = p.swash.SelectedKey()
	return true
}

type gyroPage struct {
	page
	gyro *Choice
}

func newGyroPage(s *Session) *gyroPage {
	p := &gyroPage{
		page: page{id: PageGyro, s: s, title: "Tail Gyro",
			text: "Has your helicopter got an adjustable gyro for the tail?",
			help: "Select how the tail gyro gain is adjusted, if at all."},
		gyro: newChoice("gyro", "Gyro",
			Option{"none", "No"},
			Option{"switch", "Yes, controlled by a switch"},
			Option{"pot", "Yes, controlled by a pot"}),
	}
	p.fields = []Field{p.gyro}
	return p
}

func (p *gyroPage) Validate() bool {
	p.page.Validate()
	p.s.Heli.Gyro = p.gyro.SelectedKey()
	return true
}

type flybarPage struct {
	page
	flybar *Choice
}

func newFlybarPage(s *Session) *flybarPage {
	p := &flybarPage{
		page: page{id: PageFlybar, s: s, title: "Rotor Type",
			text: "Has your helicopter got a flybar?",
			help: "Flybarless helicopters take their cyclic commands through a flybarless controller."},
		flybar: newChoice("flybar", "Flybar",
			Option{"flybar", "Has Flybar"},
			Option{"flybarless", "Flybarless"}),
	}
	p.fields = []Field{p.flybar}
	return p
}

func (p *flybarPage) Validate() bool {
	p.page.Validate()
	p.s.Heli.Flybar = p.flybar.Is("flybar")
	return true
}

func (p *flybarPage) NextID() PageID { return nextPage(p.id, p.flybar.SelectedKey()) }

// fourChannelPage books throttle, yaw, pitch and roll on four channels.
type fourChannelPage struct {
	page
	throttle, yaw, pitch, roll *ChannelSelect
}

func newFourChannelPage(s *Session, id PageID) *fourChannelPage {
	p := &fourChannelPage{
		page:     page{id: id, s: s},
		throttle: newChannelSelect("throttle", "Throttle Channel", nil),
		yaw:      newChannelSelect("yaw", "Yaw Channel", nil),
		pitch:    newChannelSelect("pitch", "Pitch Channel", nil),
		roll:     newChannelSelect("roll", "Roll Channel", nil),
	}
	p.fields = []Field{p.throttle, p.yaw, p.pitch, p.roll}
	return p
}

func (p *fourChannelPage) Initialize() {
	p.begin()
	p.populate(p.throttle, p.s.defaultChannel(InputThrottle))
	p.populate(p.yaw, p.s.defaultChannel(InputRudder))
	p.populate(p.pitch, p.s.defaultChannel(InputElevator))
	p.populate(p.roll, p.s.defaultChannel(InputAilerons))
}

func (p *fourChannelPage) Validate() bool {
	p.page.Validate()
	return p.book(p.throttle, Contribution{Input: InputThrottle, Weight: 100}, Contribution{}) &&
		p.book(p.yaw, Contribution{Input: InputRudder, Weight: 100}, Contribution{}) &&
		p.book(p.pitch, Contribution{Input: InputElevator, Weight: 100}, Contribution{}) &&
		p.book(p.roll, Contribution{Input: InputAilerons, Weight: 100}, Contribution{})
}

func newHeliPage(s *Session, id PageID) *fourChannelPage {
	p := newFourChannelPage(s, id)
	p.title = "Helicopter"
	p.text = "Select the controls for your helicopter"
	p.help = "Select the receiver channels for throttle, tail (yaw), pitch and roll."
	return p
}

func newMultirotorPage(s *Session) *fourChannelPage {
	p := newFourChannelPage(s, PageMultirotor)
	p.title = "Multirotor"
	p.text = "Select the control channels for your multirotor"
	p.help = "Select the control channels for your multirotor.\n\n" +
		"Throttle - Spektrum: CH1, Futaba: CH3\n" +
		"Yaw - Spektrum: CH4, Futaba: CH4\n" +
		"Pitch - Spektrum: CH3, Futaba: CH2\n" +
		"Roll - Spektrum: CH2, Futaba: CH1"
	return p
}

type optionsPage struct {
	page
	throttleTimer *Toggle
	flightTimer   *Toggle
}

func newOptionsPage(s *Session) *optionsPage {
	p := &optionsPage{
		page: page{id: PageOptions, s: s, title: "Model Options",
			text: "Select additional options",
			help: "Select the options for your model."},
		throttleTimer: newToggle("throttle_timer", "Throttle Timer"),
		flightTimer:   newToggle("flight_timer", "Flight Timer"),
	}
	p.fields = []Field{p.throttleTimer, p.flightTimer}
	return p
}

func (p *optionsPage) Validate() bool {
	p.page.Validate()
	p.s.Options = Options{ThrottleTimer: p.throttleTimer.On, FlightTimer: p.flightTimer.On}
	return true
}

type conclusionPage struct {
	page
	understood *Toggle
	summary    string
}

func newConclusionPage(s *Session) *conclusionPage {
	p := &conclusionPage{
		page: page{id: PageConclusion, s: s, title: "Save Changes",
			text: "Manually check the direction of each control surface and reverse any channels that make controls move in the wrong direction. " +
				"Remove the propeller/propellers before you try to control your model for the first time.\n" +
				"Please note that continuing removes all old model settings!",
			help: "Summary report of all the choices you have made. These will be used to create your model when you finish.\n\n" +
				"It is very important that you bench check the newly created model to ensure all controls surfaces move in the correct directions " +
				"and other controls and switches affect the model as expected."},
		understood: newToggle("understood", "OK, I understand."),
	}
	p.fields = []Field{p.understood}
	return p
}

func (p *conclusionPage) Initialize() {
	p.begin()
	p.summary = Summary(p.s)
	p.understood.On = false
}

// Notice carries the summary of all answers.
func (p *conclusionPage) Notice() string { return p.summary }

func (p *conclusionPage) Validate() bool {
	p.problem = ""
	if !p.understood.On {
		return p.fail("Confirm that you understand before finishing")
	}
	p.s.Completed = true
	return true
}
