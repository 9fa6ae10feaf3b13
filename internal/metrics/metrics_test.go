package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given manager options", t, func() {
		Convey("When creating with defaults", func() {
			m := NewManager()

			Convey("Then it uses the handycalc namespace", func() {
				So(m, ShouldNotBeNil)
				So(m.namespace, ShouldEqual, "handycalc")
				So(m.Registry(), ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			m := NewManager(WithNamespace("test"), WithHistogramBuckets([]float64{1, 2}))

			Convey("Then the options are applied", func() {
				So(m.namespace, ShouldEqual, "test")
				So(m.buckets, ShouldResemble, []float64{1, 2})
			})
		})

		Convey("When empty options are passed", func() {
			m := NewManager(WithNamespace(""), WithHistogramBuckets(nil))

			Convey("Then the defaults survive", func() {
				So(m.namespace, ShouldEqual, "handycalc")
				So(len(m.buckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		m := Default()

		Convey("When recording confirmed tokens", func() {
			before := testutil.ToFloat64(m.tokensConfirmed.WithLabelValues("7"))
			RecordConfirmed("7")
			RecordConfirmed("7")

			Convey("Then the labelled counter grows", func() {
				So(testutil.ToFloat64(m.tokensConfirmed.WithLabelValues("7")), ShouldEqual, before+2)
			})
		})

		Convey("When recording evaluations", func() {
			before := testutil.ToFloat64(m.evaluations.WithLabelValues(OutcomeDivisionByZero))
			RecordEvaluation(OutcomeDivisionByZero)

			Convey("Then the outcome counter grows", func() {
				So(testutil.ToFloat64(m.evaluations.WithLabelValues(OutcomeDivisionByZero)), ShouldEqual, before+1)
			})
		})

		Convey("When extra hands are recorded", func() {
			before := testutil.ToFloat64(m.extraHandsDropped)
			RecordExtraHands(0)
			RecordExtraHands(2)

			Convey("Then only positive counts are added", func() {
				So(testutil.ToFloat64(m.extraHandsDropped), ShouldEqual, before+2)
			})
		})

		Convey("When the remaining helpers are called", func() {
			So(func() {
				RecordFrame(2, 0.4)
				RecordClassified("digit")
				RecordIncompleteObservation()
				UpdateSubscribers(3)
				RecordRecordingFrames(10)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(m.subscribers), ShouldEqual, 3)
		})
	})
}

func TestHandler(t *testing.T) {
	Convey("Given the metrics handler", t, func() {
		RecordFrame(1, 0.2)
		rec := httptest.NewRecorder()
		Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		Convey("Then it exposes the calculator metrics", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "handycalc_frames_processed_total")
		})
	})
}
