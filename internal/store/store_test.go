package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/alex28786/the-reef/core/db/sqlc"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("mapErr", func() {
	It("maps no rows to ErrNotFound", func() {
		Expect(mapErr(fmt.Errorf("get: %w", pgx.ErrNoRows))).To(MatchError(ErrNotFound))
	})

	It("maps unique violations to ErrDuplicate", func() {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "submissions_context_id_round_author_id_key"}
		Expect(mapErr(err)).To(MatchError(ErrDuplicate))
	})

	It("passes other errors through", func() {
		boom := errors.New("connection refused")
		Expect(mapErr(boom)).To(Equal(boom))
		Expect(mapErr(nil)).To(BeNil())
	})
})

var _ = Describe("toSubmissionModel", func() {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	It("decodes a stored bridge enrichment", func() {
		emotion := "hurt"
		row := sqlc.Submission{
			ID:          7,
			ContextID:   3,
			Round:       1,
			AuthorID:    11,
			Body:        "You never listen",
			Emotion:     &emotion,
			Enrichment:  []byte(`{"version":1,"kind":"bridge","source":"heuristic","enrichedAt":"2026-03-01T12:00:00Z","bridge":{"horsemenFlags":["criticism"],"detectedHorsemen":[{"type":"criticism","reason":"r","quote":"You never"}],"sentiment":"tense","suggestions":["s"],"transformedText":"I'm feeling upset"}}`),
			EnrichedAt:  pgtype.Timestamptz{Time: now, Valid: true},
			SubmittedAt: pgtype.Timestamptz{Time: now, Valid: true},
		}

		sub, err := toSubmissionModel(row)
		Expect(err).NotTo(HaveOccurred())
		Expect(*sub.Emotion).To(Equal(model.EmotionHurt))
		Expect(sub.IsEnriched()).To(BeTrue())
		Expect(sub.Enrichment.Bridge.HorsemenFlags).To(ConsistOf(model.HorsemanCriticism))
		Expect(sub.Enrichment.Complete()).To(BeTrue())
		Expect(sub.EnrichedAt).NotTo(BeNil())
		Expect(sub.AcknowledgedAt).To(BeNil())
	})

	It("leaves enrichment nil when the column is NULL", func() {
		sub, err := toSubmissionModel(sqlc.Submission{ID: 1, Body: "x"})
		Expect(err).NotTo(HaveOccurred())
		Expect(sub.IsEnriched()).To(BeFalse())
		Expect(sub.Emotion).To(BeNil())
	})

	It("reports corrupt enrichment JSON", func() {
		_, err := toSubmissionModel(sqlc.Submission{ID: 9, Enrichment: []byte(`{"version":`)})
		Expect(err).To(MatchError(ContainSubstring("submission 9")))
	})
})

var _ = Describe("toSharedContextModel", func() {
	It("carries the optional event date", func() {
		day := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
		sc := toSharedContextModel(sqlc.SharedContext{
			ID:        5,
			Kind:      "retro",
			Status:    "submitted",
			Round:     1,
			EventDate: pgtype.Date{Time: day, Valid: true},
		})
		Expect(sc.Kind).To(Equal(model.ContextKindRetro))
		Expect(sc.Status).To(Equal(model.ContextStatusSubmitted))
		Expect(*sc.EventDate).To(Equal(day))
	})
})
