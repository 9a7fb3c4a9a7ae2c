package forwarder

import (
	"encoding/base64"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tvworks/repairdesk/internal/domain"
)

// Payload is the JSON body posted to the configured submission
// endpoint. Photo content is base64-encoded.
type Payload struct {
	Serial      string             `json:"serial"`
	Model       string             `json:"model"`
	Family      string             `json:"family"`
	Size        float64            `json:"size"`
	FailureCode string             `json:"failure_code"`
	Disposition string             `json:"disposition"`
	Technician  string             `json:"technician"`
	Notes       string             `json:"notes"`
	Photos      []domain.PhotoItem `json:"photos"`
}

var ErrDisabled = errors.New("forward endpoint not configured")

// PhotoLoader resolves photo bytes for payload assembly.
type PhotoLoader func(id string) ([]byte, error)

// Forwarder posts repair submissions to an external HTTP endpoint.
// Optional collaborator: disabled when no endpoint is configured.
type Forwarder struct {
	endpoint string
	timeout  time.Duration
}

func New(endpoint string, timeoutSec int) *Forwarder {
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	return &Forwarder{
		endpoint: endpoint,
		timeout:  time.Duration(timeoutSec) * time.Second,
	}
}

func (f *Forwarder) Enabled() bool {
	return f.endpoint != ""
}

// BuildPayload assembles the submission from a combined record: the
// most recent intake plus the latest repair, with photo bytes inlined.
func BuildPayload(combined domain.CombinedRecord, load PhotoLoader) Payload {
	p := Payload{Serial: combined.Serial, Photos: []domain.PhotoItem{}}
	var refs []domain.PhotoRef
	if combined.Intake != nil {
		p.Model = combined.Intake.Model
		p.Family = combined.Intake.Family
		p.Size = combined.Intake.SizeIn
		refs = append(refs, combined.Intake.Photos...)
	}
	if n := len(combined.Repairs); n > 0 {
		last := combined.Repairs[n-1]
		p.FailureCode = last.FailureCode
		p.Disposition = last.Disposition
		p.Technician = last.Technician
		p.Notes = last.Notes
		refs = append(refs, last.Photos...)
	}
	for _, ref := range refs {
		if load == nil {
			break
		}
		data, err := load(ref.ID)
		if err != nil {
			zap.L().Warn("photo unavailable for submission",
				zap.String("id", ref.ID), zap.Error(err))
			continue
		}
		p.Photos = append(p.Photos, domain.PhotoItem{
			Name:    ref.Name,
			Content: base64.StdEncoding.EncodeToString(data),
		})
	}
	return p
}

// Submit posts the payload. One attempt, no retry.
func (f *Forwarder) Submit(payload Payload) error {
	if !f.Enabled() {
		return ErrDisabled
	}
	var code int
	err := gout.POST(f.endpoint).
		SetTimeout(f.timeout).
		SetJSON(payload).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrap(err, "submit payload")
	}
	if code < 200 || code > 299 {
		return errors.Errorf("submission endpoint returned status %d", code)
	}
	zap.L().Info("submission forwarded",
		zap.String("serial", payload.Serial), zap.Int("status", code))
	return nil
}
