package usecase

import (
	"github.com/huddle-lab/standup/pkg/domain/interfaces"
	"github.com/huddle-lab/standup/pkg/service/archive"
)

// UseCases is the application context built once at startup and injected into
// every handler.
type UseCases struct {
	Meeting *MeetingUseCase
}

type Option func(*MeetingUseCase)

// WithArchive sets the object storage archive (defaults to unavailable)
func WithArchive(a interfaces.Archive) Option {
	return func(uc *MeetingUseCase) {
		uc.archive = a
	}
}

// WithRenderer sets the report renderer (defaults to none)
func WithRenderer(r interfaces.ReportRenderer) Option {
	return func(uc *MeetingUseCase) {
		uc.renderer = r
	}
}

func New(store interfaces.MeetingStore, opts ...Option) *UseCases {
	meeting := &MeetingUseCase{
		store:   store,
		archive: archive.Unavailable{},
	}
	for _, opt := range opts {
		opt(meeting)
	}

	return &UseCases{Meeting: meeting}
}
