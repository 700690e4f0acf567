package receiver

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"navident/internal/morse"
	"navident/internal/power"
	"navident/internal/simvar"
)

// Variable name formats of a navigation receiver's ports.
const (
	IdentPackedFormat = "%s%d_IDENT_PACKED"
	BeepIdentFormat   = "ACP_BEEP_IDENT_%s%d"
)

// NavReceiver keys the identifier of the station a navigation radio is tuned to.
// The engine keeps running while unpowered since the transmitted signal is external.
type NavReceiver struct {
	name      string
	id        int
	poweredBy power.BusType
	logger    *logrus.Logger

	identID simvar.Identifier
	beepID  simvar.Identifier

	engine    *morse.Engine
	powered   bool
	okToSound bool
	keyed     bool
}

// NewNavReceiver creates the receiver for radio name+id, e.g. ("VOR", 1).
func NewNavReceiver(registry *simvar.Registry, name string, id int, poweredBy power.BusType, logger *logrus.Logger, opts ...morse.Option) *NavReceiver {
	return &NavReceiver{
		name:      name,
		id:        id,
		poweredBy: poweredBy,
		logger:    logger,
		identID:   registry.Identifier(fmt.Sprintf(IdentPackedFormat, name, id)),
		beepID:    registry.Identifier(fmt.Sprintf(BeepIdentFormat, name, id)),
		engine:    morse.NewEngine(opts...),
	}
}

// Name returns the radio name and number, e.g. "VOR1".
func (r *NavReceiver) Name() string {
	return fmt.Sprintf("%s%d", r.name, r.id)
}

// PoweredBy returns the bus supplying the receiver.
func (r *NavReceiver) PoweredBy() power.BusType {
	return r.poweredBy
}

// OutputID returns the identifier of the published beep variable.
func (r *NavReceiver) OutputID() simvar.Identifier {
	return r.beepID
}

// IdentID returns the identifier of the packed identifier input.
func (r *NavReceiver) IdentID() simvar.Identifier {
	return r.identID
}

// SetPowered sets the power supply state.
func (r *NavReceiver) SetPowered(powered bool) {
	r.powered = powered
}

// IsPowered reports the power supply state.
func (r *NavReceiver) IsPowered() bool {
	return r.powered
}

// SetIdentifier feeds the packed identifier of the tuned station.
func (r *NavReceiver) SetIdentifier(packed uint64) {
	if !r.engine.SetActiveIdentifier(packed) {
		return
	}
	r.logger.WithFields(logrus.Fields{
		"receiver": r.Name(),
		"packed":   packed,
	}).Debug("Station identifier changed")
}

// Update advances the identifier keying by elapsed and applies the gates.
// okToSound is always true for VOR and ADF, conditional for ILS.
func (r *NavReceiver) Update(elapsed time.Duration, okToSound bool) {
	r.okToSound = r.powered && okToSound
	r.engine.Tick(elapsed)
	r.keyed = r.okToSound && r.engine.IsKeyed()
}

// Output returns the gated keyed state from the last Update.
func (r *NavReceiver) Output() bool {
	return r.keyed
}

// Identifier returns the decoded identifier being keyed.
func (r *NavReceiver) Identifier() string {
	return r.engine.Identifier()
}

// Engine exposes the underlying timing engine.
func (r *NavReceiver) Engine() *morse.Engine {
	return r.engine
}

// ReceivePower refreshes the power state from the supplying bus.
func (r *NavReceiver) ReceivePower(buses power.Buses) {
	r.SetPowered(buses.IsPowered(r.poweredBy))
}

// Read refreshes the packed identifier input.
func (r *NavReceiver) Read(reader simvar.Reader) {
	r.SetIdentifier(simvar.ReadPacked(reader, r.identID))
}

// Write publishes the output.
func (r *NavReceiver) Write(writer simvar.Writer) {
	simvar.WriteBool(writer, r.beepID, r.keyed)
}
