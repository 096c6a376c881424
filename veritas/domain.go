package veritas

import "fmt"

// DomainTruth is a domain-specific claim that knows how to express itself
// as one of the four base truth types. Adapters stay pure data mappers: the
// engine never performs the HTTP call or model evaluation itself, it only
// judges the evidence the caller gathered.
type DomainTruth interface {
	// Domain names the area this truth belongs to (e.g. "api", "ml").
	Domain() string

	// BaseTruth converts the domain claim to a base truth. A malformed
	// adapter surfaces here as a ConfigError.
	BaseTruth() (Truth, error)
}

// VerifyDomain converts a domain truth and verifies it against evidence
func (v *Verifier) VerifyDomain(dt DomainTruth, ev *Evidence) (Result, error) {
	t, err := dt.BaseTruth()
	if err != nil {
		return Result{}, err
	}
	return v.Verify(t, ev), nil
}

// HTTPStatus claims that an endpoint responds with a given status code
type HTTPStatus struct {
	Endpoint       string
	ExpectedStatus int
}

func (h HTTPStatus) Domain() string { return "api" }

func (h HTTPStatus) BaseTruth() (Truth, error) {
	return NewAnalytic(
		fmt.Sprintf("GET %s returns %d", h.Endpoint, h.ExpectedStatus),
		"status_code",
		h.ExpectedStatus,
	)
}

// Bind packages an observed status code as evidence
func (h HTTPStatus) Bind(statusCode int) *Evidence {
	ev := NewEvidence().Bind("status_code", statusCode)
	ev.Source = "HTTP " + h.Endpoint
	return ev
}

// ModelAccuracy claims that a model meets a minimum accuracy
type ModelAccuracy struct {
	Model     string
	Threshold float64
}

func (m ModelAccuracy) Domain() string { return "ml" }

func (m ModelAccuracy) BaseTruth() (Truth, error) {
	return NewProbabilistic(
		fmt.Sprintf("%s accuracy >= %v", m.Model, m.Threshold),
		"accuracy",
		m.Threshold,
		">=",
	)
}

// Bind packages a measured accuracy as evidence
func (m ModelAccuracy) Bind(accuracy float64) *Evidence {
	ev := NewEvidence().Bind("accuracy", accuracy)
	ev.Source = "model evaluation: " + m.Model
	return ev
}

// StateInvariant claims that a property holds for any observed state
type StateInvariant struct {
	Name      string
	Predicate Predicate
}

func (s StateInvariant) Domain() string { return "state" }

func (s StateInvariant) BaseTruth() (Truth, error) {
	return NewModal(fmt.Sprintf("%s holds", s.Name), "state", s.Predicate)
}

// Bind packages an observed state as evidence
func (s StateInvariant) Bind(state any) *Evidence {
	ev := NewEvidence().Bind("state", state)
	ev.Source = "invariant check: " + s.Name
	return ev
}

// DataGrounding claims that supporting material of the given type exists
// for a claim.
type DataGrounding struct {
	Claim        string
	EvidenceType string // e.g. "test", "doc", "citation"
}

func (d DataGrounding) Domain() string { return "grounding" }

func (d DataGrounding) BaseTruth() (Truth, error) {
	return Grounding(d.Claim, d.EvidenceType)
}

// Bind packages discovered support (or nil) as evidence
func (d DataGrounding) Bind(support any) *Evidence {
	ev := NewEvidence().Bind("support", support)
	ev.Source = "grounding check: " + d.EvidenceType
	return ev
}
