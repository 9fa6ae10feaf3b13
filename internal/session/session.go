// Package session runs the per-frame gesture calculator cycle: extract
// finger states, classify, stabilize and accumulate.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/ayusman/handycalc/internal/calc"
	"github.com/ayusman/handycalc/internal/detector"
	"github.com/ayusman/handycalc/internal/gesture"
	"github.com/ayusman/handycalc/internal/logger"
	"github.com/ayusman/handycalc/internal/metrics"
)

// Session owns one stabilizer and one expression. It is driven by a single
// caller and is not safe for concurrent use.
type Session struct {
	stabilizer *gesture.Stabilizer
	expr       calc.Expression
	log        logger.Logger

	raw   gesture.Token
	hands int
}

// New creates a session with an empty expression.
func New(opts ...Option) *Session {
	s := &Session{
		stabilizer: gesture.NewStabilizer(),
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process runs one frame observed at now. It returns the token confirmed
// by this frame, if any, after applying it to the expression.
func (s *Session) Process(hands []detector.HandLandmarks, now time.Time) (gesture.Token, bool) {
	ctx := context.Background()
	start := time.Now()

	for i := range hands {
		if err := hands[i].Validate(); err != nil {
			metrics.RecordIncompleteObservation()
			s.log.Debug(ctx, "incomplete hand observation", logger.Int("hand", i), logger.Error(err))
		}
	}
	if extra := len(hands) - gesture.MaxHands; extra > 0 {
		metrics.RecordExtraHands(extra)
		s.log.Debug(ctx, "dropping extra hands", logger.Int("seen", len(hands)), logger.Int("dropped", extra))
		hands = hands[:gesture.MaxHands]
	}

	s.raw = gesture.Classify(hands)
	s.hands = len(hands)
	metrics.RecordClassified(s.raw.Kind.String())

	tok, ok := s.stabilizer.Update(s.raw, now)
	if ok {
		metrics.RecordConfirmed(tok.String())
		s.log.Info(ctx, "token confirmed", logger.String("token", tok.String()))
		s.Apply(tok)
	}

	metrics.RecordFrame(len(hands), float64(time.Since(start).Microseconds())/1000)
	return tok, ok
}

// Apply feeds a confirmed token to the expression.
func (s *Session) Apply(tok gesture.Token) {
	switch tok.Kind {
	case gesture.KindDigit:
		s.expr.AppendDigit(tok.Digit)
	case gesture.KindOperator:
		s.expr.AppendOperator(tok.Op.Symbol())
	case gesture.KindClear:
		s.expr.Clear()
	case gesture.KindEquals:
		s.evaluate()
	}
}

// Clear empties the expression, as a confirmed Clear token would.
func (s *Session) Clear() { s.Apply(gesture.Clear) }

// Evaluate computes the expression, as a confirmed Equals token would.
func (s *Session) Evaluate() { s.Apply(gesture.Equals) }

func (s *Session) evaluate() {
	if s.expr.Empty() {
		metrics.RecordEvaluation(metrics.OutcomeEmpty)
		return
	}

	err := s.expr.Evaluate()
	switch {
	case err == nil:
		metrics.RecordEvaluation(metrics.OutcomeOK)
		s.log.Info(context.Background(), "expression evaluated",
			logger.String("expression", s.expr.Text()), logger.String("result", s.expr.Result()))
		return
	case errors.Is(err, calc.ErrDivisionByZero):
		metrics.RecordEvaluation(metrics.OutcomeDivisionByZero)
	case errors.Is(err, calc.ErrEmptyExpression):
		metrics.RecordEvaluation(metrics.OutcomeEmpty)
	default:
		metrics.RecordEvaluation(metrics.OutcomeInvalid)
	}
	s.log.Warn(context.Background(), "evaluation failed",
		logger.String("expression", s.expr.Text()), logger.Error(err))
}

// HoldDuration returns the stabilizer's confirmation delay.
func (s *Session) HoldDuration() time.Duration { return s.stabilizer.HoldDuration() }

// SetHoldDuration changes the confirmation delay, clamped to [0.5s, 3s].
func (s *Session) SetHoldDuration(d time.Duration) { s.stabilizer.SetHoldDuration(d) }

// Expression returns the stored buffer with ASCII operators.
func (s *Session) Expression() string { return s.expr.Text() }

// Result returns the last result or error as displayed.
func (s *Session) Result() string { return s.expr.ResultText() }

// Reset forgets the expression and the stabilizer state.
func (s *Session) Reset() {
	s.expr.Clear()
	s.stabilizer.Reset()
	s.raw = gesture.Unknown
	s.hands = 0
}
