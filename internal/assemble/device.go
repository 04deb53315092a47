package assemble

import (
	"slices"
	"strings"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
)

// family is a device keyword family.
type family int

const (
	familyNone family = iota
	familyVMP
	familyVCS
	familyXMPP
	familyEdge
	familyVocera
)

// familyKeywords are scanned in order, so "Vocera VCS" resolves to VCS.
//
//nolint:gochecknoglobals // Immutable keyword table.
var familyKeywords = []struct {
	family  family
	keyword string
}{
	{familyVMP, "vmp"},
	{familyVCS, "vcs"},
	{familyXMPP, "xmpp"},
	{familyEdge, "edge"},
	{familyVocera, "vocera"},
}

var (
	vmpInterface = flow.Interface{ReferenceName: "VMP", ComponentName: "VMP"}
	// edgeInterface is the outgoing WCTP component used by Edge devices.
	edgeInterface   = flow.Interface{ReferenceName: "OutgoingWCTP", ComponentName: "OutgoingWCTP"}
	xmppInterface   = flow.Interface{ReferenceName: "XMPP", ComponentName: "XMPP"}
	voceraInterface = flow.Interface{ReferenceName: "Vocera", ComponentName: "Vocera"}
)

// detectFamily matches a device field against the keyword families.
func detectFamily(device string) family {
	lowered := strings.ToLower(device)
	for _, fk := range familyKeywords {
		if strings.Contains(lowered, fk.keyword) {
			return fk.family
		}
	}

	return familyNone
}

func (f family) component() (flow.Interface, bool) {
	switch f {
	case familyVMP, familyVCS:
		return vmpInterface, true
	case familyEdge:
		return edgeInterface, true
	case familyXMPP:
		return xmppInterface, true
	case familyVocera:
		return voceraInterface, true
	case familyNone:
	}

	return flow.Interface{}, false
}

// deliveryProfile is what the device fields resolve to.
type deliveryProfile struct {
	// families holds the detected and default families in interface order.
	families []family
	// interfaces are the distinct components.
	interfaces []flow.Interface
}

// priorityFamily is the first family selecting the priority table.
func (p deliveryProfile) priorityFamily() family {
	if len(p.families) == 0 {
		return familyNone
	}

	return p.families[0]
}

// resolveDevices infers interfaces from both device fields. Default
// interfaces are added only when neither field carries a keyword and the
// secondary field is non-empty; an empty secondary with a keyword-less
// primary adds nothing.
func resolveDevices(deviceA, deviceB string, defaults DefaultInterfaces) deliveryProfile {
	var profile deliveryProfile

	primary, secondary := detectFamily(deviceA), detectFamily(deviceB)
	for _, f := range []family{primary, secondary} {
		if f != familyNone {
			profile.add(f)
		}
	}

	if primary == familyNone && secondary == familyNone && strings.TrimSpace(deviceB) != "" {
		if defaults.Edge {
			profile.add(familyEdge)
		}

		if defaults.VMP {
			profile.add(familyVMP)
		}
	}

	if profile.interfaces == nil {
		profile.interfaces = []flow.Interface{}
	}

	return profile
}

func (p *deliveryProfile) add(f family) {
	p.families = append(p.families, f)

	component, ok := f.component()
	if !ok || slices.Contains(p.interfaces, component) {
		return
	}

	p.interfaces = append(p.interfaces, component)
}

// soundParameters routes the ringtone: VMP and VCS share badgeAlertSound,
// bare Vocera splits into alertSound plus badgeAlertSound, and the rest use
// alertSound.
func soundParameters(ringtone string, families []family) []flow.ParameterAttribute {
	ringtone = strings.TrimSpace(ringtone)
	if ringtone == "" {
		return nil
	}

	var alert, badge bool

	for _, f := range families {
		switch f {
		case familyVMP, familyVCS:
			badge = true
		case familyVocera:
			alert, badge = true, true
		case familyEdge, familyXMPP:
			alert = true
		case familyNone:
		}
	}

	var params []flow.ParameterAttribute
	if alert {
		params = append(params, parameter("alertSound", flow.Literal(ringtone)))
	}

	if badge {
		params = append(params, parameter("badgeAlertSound", flow.Literal(ringtone)))
	}

	return params
}
