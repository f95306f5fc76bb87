package forward_test

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/karoo-geo/voxfield/internal/forward"
	"github.com/karoo-geo/voxfield/internal/grid"
	"github.com/karoo-geo/voxfield/internal/model"
)

func TestForward(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Forward Solver Suite")
}

// genericModel builds the 10x10x5, 50 m scenario used throughout:
// one lithology, susceptibility 0.01 SI, density contrast 0.3,
// no remanence, inducing field inclination 60, declination 0.
func genericModel(tlx, tly float64) *model.Model {
	m, err := model.QuickModel(10, 10, 5, 50, 50, tlx, tly, 0, 0, 60, 0,
		[]model.Lithology{{Name: "Generic", Density: 0.3, Susceptibility: 0.01}})
	Expect(err).NotTo(HaveOccurred())
	return m
}

func solve(m *model.Model, obs *grid.Observation, mode forward.Mode) *forward.Result {
	res, err := forward.New().Compute(context.Background(), m, obs, mode)
	Expect(err).NotTo(HaveOccurred())
	return res
}

var _ = Describe("forward field properties", func() {
	It("is linear over disjoint voxel sets", func() {
		a := genericModel(0, 500)
		a.Set(2, 2, 1, 1)

		b := genericModel(0, 500)
		b.Set(7, 6, 3, 1)

		both := genericModel(0, 500)
		both.Set(2, 2, 1, 1)
		both.Set(7, 6, 3, 1)

		obs := grid.FromModel(a, 100)
		ra := solve(a, obs, forward.Both)
		rb := solve(b, obs, forward.Both)
		rab := solve(both, obs, forward.Both)

		for i := range rab.Gravity.Data {
			sum := ra.Gravity.Data[i] + rb.Gravity.Data[i]
			Expect(rab.Gravity.Data[i]).To(BeNumerically("~", sum, 1e-6*math.Abs(sum)+1e-12))

			msum := ra.Magnetic.Data[i] + rb.Magnetic.Data[i]
			Expect(rab.Magnetic.Data[i]).To(BeNumerically("~", msum, 1e-6*math.Abs(msum)+1e-12))
		}
	})

	It("produces all zeros for an empty model", func() {
		m := genericModel(0, 500)
		res := solve(m, grid.FromModel(m, 250), forward.Both)
		Expect(res.Gravity.Data).To(HaveEach(0.0))
		Expect(res.Magnetic.Data).To(HaveEach(0.0))
	})

	It("is invariant under horizontal translation", func() {
		near := genericModel(0, 500)
		near.Set(5, 5, 2, 1)
		far := genericModel(25000, 73500)
		far.Set(5, 5, 2, 1)

		rn := solve(near, grid.FromModel(near, 100), forward.Both)
		rf := solve(far, grid.FromModel(far, 100), forward.Both)

		for i := range rn.Gravity.Data {
			Expect(rf.Gravity.Data[i]).To(BeNumerically("~", rn.Gravity.Data[i], 1e-9))
			Expect(rf.Magnetic.Data[i]).To(BeNumerically("~", rn.Magnetic.Data[i], 1e-9))
		}
	})

	It("reproduces the closed-form value for a single buried cube", func() {
		m := genericModel(0, 500)
		m.Set(5, 5, 2, 1)
		res := solve(m, grid.FromModel(m, 0), forward.Gravity)

		// Independent corner-sum evaluation for the observation point
		// directly above the cube center: x, y in [-25, 25], z in [100, 150].
		want := prismGravityReference(-25, 25, -25, 25, 100, 150, 0.3)
		Expect(res.Gravity.At(5, 5)).To(BeNumerically("~", want, 1e-10*math.Abs(want)))
	})

	It("weakens with observation height", func() {
		m := genericModel(0, 500)
		m.Set(5, 5, 2, 1)

		low := solve(m, grid.FromModel(m, 100), forward.Both)
		high := solve(m, grid.FromModel(m, 300), forward.Both)

		_, _, gLow := low.Gravity.Peak()
		_, _, gHigh := high.Gravity.Peak()
		Expect(math.Abs(gHigh)).To(BeNumerically("<", math.Abs(gLow)))

		_, _, mLow := low.Magnetic.Peak()
		_, _, mHigh := high.Magnetic.Peak()
		Expect(math.Abs(mHigh)).To(BeNumerically("<", math.Abs(mLow)))
	})

	It("puts the peak above the body and decays away from it", func() {
		m := genericModel(0, 500)
		m.Set(5, 5, 2, 1)
		res := solve(m, grid.FromModel(m, 0), forward.Both)

		gc, gr, gv := res.Gravity.Peak()
		Expect(gc).To(Equal(5))
		Expect(gr).To(Equal(5))
		Expect(gv).To(BeNumerically(">", 0))

		// Monotone decay west, east, north and south of the peak.
		row := res.Gravity.Row(5)
		for c := 5; c < 9; c++ {
			Expect(row[c+1]).To(BeNumerically("<", row[c]))
		}
		for c := 5; c > 0; c-- {
			Expect(row[c-1]).To(BeNumerically("<", row[c]))
		}
		for r := 5; r < 9; r++ {
			Expect(res.Gravity.At(5, r+1)).To(BeNumerically("<", res.Gravity.At(5, r)))
		}
		for r := 5; r > 0; r-- {
			Expect(res.Gravity.At(5, r-1)).To(BeNumerically("<", res.Gravity.At(5, r)))
		}

		// At 60 degrees inclination the total-field high sits near the
		// body, shifted at most one cell along the field azimuth.
		mc, mr, mv := res.Magnetic.Peak()
		Expect(mv).To(BeNumerically(">", 0))
		Expect(math.Abs(float64(mc - 5))).To(BeNumerically("<=", 1))
		Expect(math.Abs(float64(mr - 5))).To(BeNumerically("<=", 1))
	})
})

// prismGravityReference evaluates the Nagy corner expression without
// loops, as an independent check on the production kernel.
func prismGravityReference(x1, x2, y1, y2, z1, z2, density float64) float64 {
	f := func(x, y, z float64) float64 {
		r := math.Sqrt(x*x + y*y + z*z)
		return z*math.Atan2(x*y, z*r) - x*math.Log(y+r) - y*math.Log(x+r)
	}
	sum := f(x2, y2, z2) - f(x1, y2, z2) - f(x2, y1, z2) + f(x1, y1, z2) -
		f(x2, y2, z1) + f(x1, y2, z1) + f(x2, y1, z1) - f(x1, y1, z1)
	return 6.6743e-3 * density * sum
}
