package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/digitalocean/contact-form/pkg/forms"
	"github.com/digitalocean/contact-form/pkg/models"
	"github.com/digitalocean/contact-form/pkg/notify"
	"github.com/digitalocean/contact-form/pkg/store"
	"github.com/digitalocean/contact-form/pkg/utils"
	"github.com/digitalocean/contact-form/pkg/validation"
)

// Result is the terminal state a POST ends in
type Result int

const (
	// ResultMalformed means the spam protection key was missing
	ResultMalformed Result = iota
	// ResultSuppressed means the spam protection field was filled and the
	// submission was dropped without telling the sender
	ResultSuppressed
	// ResultInvalid means the payload failed validation
	ResultInvalid
	// ResultAccepted means the submission was saved and staff were notified
	ResultAccepted
)

func (r Result) String() string {
	switch r {
	case ResultMalformed:
		return "malformed"
	case ResultSuppressed:
		return "suppressed"
	case ResultInvalid:
		return "invalid"
	case ResultAccepted:
		return "accepted"
	}
	return "unknown"
}

// Outcome describes how a submission was handled
type Outcome struct {
	Result Result
	// Errors is set for ResultInvalid
	Errors models.FieldErrors
	// Cleaned is set for ResultAccepted and never holds the spam protection value
	Cleaned    models.CleanedData
	Submission models.Submission
}

// SubmissionService defines the interface for handling form submissions
type SubmissionService interface {
	Submit(ctx context.Context, page models.FormPage, payload url.Values) (Outcome, error)
}

type submissionServiceImpl struct {
	engine validation.Engine
	store  store.Store
	sender notify.Sender
	log    logrus.FieldLogger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	engine validation.Engine,
	store store.Store,
	sender notify.Sender,
	log logrus.FieldLogger,
) SubmissionService {
	return &submissionServiceImpl{
		engine: engine,
		store:  store,
		sender: sender,
		log:    log,
	}
}

// Submit runs the spam gate and, for real submissions, validation, persistence
// and notification. Errors returned are downstream failures only; rejected
// payloads are reported through the Outcome.
func (s *submissionServiceImpl) Submit(ctx context.Context, page models.FormPage, payload url.Values) (Outcome, error) {
	log := s.log.WithField("page_id", page.ID)

	switch forms.Classify(payload) {
	case forms.GateMalformed:
		log.Info("rejecting submission without spam protection field")
		return Outcome{Result: ResultMalformed}, nil
	case forms.GateSuppressed:
		log.Info("suppressing submission with filled spam protection field")
		return Outcome{Result: ResultSuppressed}, nil
	}

	result := s.engine.Validate(payload, page.Fields)
	if !result.Valid() {
		log.WithField("fields", len(result.Errors)).Info("submission failed validation")
		return Outcome{Result: ResultInvalid, Errors: result.Errors}, nil
	}

	cleaned := forms.StripHoneypot(result.Cleaned)
	sub, err := s.process(ctx, page, cleaned)
	if err != nil {
		return Outcome{}, err
	}

	log.WithField("submission_id", sub.ID).Info("submission accepted")
	return Outcome{Result: ResultAccepted, Cleaned: cleaned, Submission: sub}, nil
}

// process saves the submission and notifies staff
func (s *submissionServiceImpl) process(ctx context.Context, page models.FormPage, cleaned models.CleanedData) (models.Submission, error) {
	digest, err := utils.HashData(cleaned)
	if err != nil {
		return models.Submission{}, err
	}

	sub, err := s.store.Save(ctx, models.Submission{
		PageID: page.ID,
		Data:   cleaned,
		Digest: digest,
	})
	if err != nil {
		return models.Submission{}, fmt.Errorf("save submission: %w", err)
	}

	msg := notify.NewMessage(page.Email, forms.DataFields(page.Fields), cleaned)
	if len(msg.To) == 0 {
		s.log.WithField("page_id", page.ID).Warn("no to address configured, skipping notification")
		return sub, nil
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return models.Submission{}, fmt.Errorf("send notification: %w", err)
	}
	return sub, nil
}
