package diagnose_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/neurosim/internal/diagnose"
	"github.com/san-kum/neurosim/internal/neuron"
)

func params(mutate func(*neuron.Params)) neuron.Params {
	p := neuron.DefaultParams()
	if mutate != nil {
		mutate(&p)
	}
	return p
}

var _ = Describe("Classify", func() {
	Context("with zero firing rate", func() {
		It("reports No Action Potentials as critical", func() {
			d := diagnose.Classify("x", params(nil), 0)
			Expect(d.Problem).To(Equal(diagnose.NoActionPotentials))
			Expect(d.Severity).To(Equal(diagnose.SeverityCritical))
		})

		It("blames a threshold above -40mV", func() {
			d := diagnose.Classify("x", params(func(p *neuron.Params) { p.Threshold = -20 }), 0)
			Expect(d.Explanation).To(ContainSubstring("Threshold voltage is too high"))
			Expect(d.Recommendation).To(ContainSubstring("Lower threshold from -20mV"))
		})

		It("blames a stimulus below 3mV when the threshold is plausible", func() {
			d := diagnose.Classify("x", params(func(p *neuron.Params) { p.Stimulus = 2 }), 0)
			Expect(d.Explanation).To(ContainSubstring("Stimulus is too weak"))
			Expect(d.Recommendation).To(ContainSubstring("Increase stimulus from 2mV"))
		})

		It("leaves the explanation blank when no sub-condition matches", func() {
			// Threshold at -55 and stimulus at 3 defeat both sub-rules;
			// the verdict keeps its category but carries no text.
			d := diagnose.Classify("x", params(func(p *neuron.Params) { p.Stimulus = 3 }), 0)
			Expect(d.Problem).To(Equal(diagnose.NoActionPotentials))
			Expect(d.Severity).To(Equal(diagnose.SeverityCritical))
			Expect(d.Explanation).To(BeEmpty())
			Expect(d.Recommendation).To(BeEmpty())
		})
	})

	Context("with a firing rate above 0.8", func() {
		It("reports Hyperexcitability as critical", func() {
			d := diagnose.Classify("x", params(nil), 0.9)
			Expect(d.Problem).To(Equal(diagnose.Hyperexcitability))
			Expect(d.Severity).To(Equal(diagnose.SeverityCritical))
		})

		It("blames a threshold below -75mV first", func() {
			d := diagnose.Classify("x", params(func(p *neuron.Params) {
				p.Threshold = -80
				p.ResetVoltage = -40
			}), 1.0)
			Expect(d.Explanation).To(ContainSubstring("Threshold voltage is too low"))
			Expect(d.Recommendation).To(ContainSubstring("Raise threshold from -80mV"))
		})

		It("blames a reset above -60mV otherwise", func() {
			d := diagnose.Classify("x", params(func(p *neuron.Params) { p.ResetVoltage = -40 }), 0.9)
			Expect(d.Explanation).To(ContainSubstring("Reset voltage is too high"))
			Expect(d.Recommendation).To(ContainSubstring("Lower reset voltage from -40mV"))
		})

		It("leaves the explanation blank when no sub-condition matches", func() {
			d := diagnose.Classify("x", params(func(p *neuron.Params) { p.Threshold = -69 }), 1.0)
			Expect(d.Problem).To(Equal(diagnose.Hyperexcitability))
			Expect(d.Explanation).To(BeEmpty())
			Expect(d.Recommendation).To(BeEmpty())
		})

		It("does not treat a rate of exactly 0.8 as hyperexcitable", func() {
			d := diagnose.Classify("x", params(nil), 0.8)
			Expect(d.Problem).To(Equal(diagnose.NormalFunction))
		})
	})

	Context("with a firing rate between 0 and 0.2", func() {
		It("reports Hypoexcitability as mild with a fixed explanation", func() {
			d := diagnose.Classify("x", params(nil), 0.1)
			Expect(d.Problem).To(Equal(diagnose.Hypoexcitability))
			Expect(d.Severity).To(Equal(diagnose.SeverityMild))
			Expect(d.Explanation).To(Equal("Neuron fires but less frequently than normal"))
		})

		It("recommends more stimulus only below 5mV", func() {
			weak := diagnose.Classify("x", params(func(p *neuron.Params) { p.Stimulus = 2 }), 0.1)
			Expect(weak.Recommendation).To(ContainSubstring("increasing stimulus from 2mV"))

			strong := diagnose.Classify("x", params(func(p *neuron.Params) { p.Stimulus = 8 }), 0.1)
			Expect(strong.Recommendation).To(BeEmpty())
		})

		It("does not treat a rate of exactly 0.2 as hypoexcitable", func() {
			d := diagnose.Classify("x", params(nil), 0.2)
			Expect(d.Problem).To(Equal(diagnose.NormalFunction))
		})
	})

	Context("with a rate in the healthy band", func() {
		It("reports Normal Function without inspecting parameters", func() {
			// Even broken-looking parameters do not override a healthy rate.
			d := diagnose.Classify("x", params(func(p *neuron.Params) { p.ResetVoltage = -40 }), 0.5)
			Expect(d.Problem).To(Equal(diagnose.NormalFunction))
			Expect(d.Severity).To(Equal(diagnose.SeverityNormal))
			Expect(d.Explanation).To(Equal("Neuron shows healthy firing patterns"))
			Expect(d.Recommendation).To(Equal("No adjustments needed"))
		})
	})

	Context("branch ordering", func() {
		It("lets zero rate win even with hyperexcitable parameters", func() {
			d := diagnose.Classify("x", params(func(p *neuron.Params) { p.ResetVoltage = -40 }), 0)
			Expect(d.Problem).To(Equal(diagnose.NoActionPotentials))
		})
	})
})

var _ = Describe("Run", func() {
	It("diagnoses the default unit as Normal Function", func() {
		n, err := neuron.New("Normal Neuron", neuron.DefaultParams())
		Expect(err).NotTo(HaveOccurred())

		d, err := diagnose.Run(n, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Case).To(Equal("Normal Neuron"))
		Expect(d.Problem).To(Equal(diagnose.NormalFunction))
	})

	It("diagnoses the high-threshold case as Hypoexcitability", func() {
		// -20 is still reached on step index 9, so the unit fires twice
		// in 20 steps rather than never.
		n, err := neuron.New("Case A", params(func(p *neuron.Params) { p.Threshold = -20 }))
		Expect(err).NotTo(HaveOccurred())

		d, err := diagnose.Run(n, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Problem).To(Equal(diagnose.Hypoexcitability))
		Expect(d.Severity).To(Equal(diagnose.SeverityMild))
	})

	It("diagnoses the low-threshold case as Hyperexcitability", func() {
		n, err := neuron.New("Case B", params(func(p *neuron.Params) { p.Threshold = -80 }))
		Expect(err).NotTo(HaveOccurred())

		d, err := diagnose.Run(n, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Problem).To(Equal(diagnose.Hyperexcitability))
		Expect(d.Explanation).To(ContainSubstring("too low"))
	})

	It("diagnoses the poor-reset case as Hyperexcitability", func() {
		n, err := neuron.New("Case C", params(func(p *neuron.Params) { p.ResetVoltage = -40 }))
		Expect(err).NotTo(HaveOccurred())

		d, err := diagnose.Run(n, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Problem).To(Equal(diagnose.Hyperexcitability))
		Expect(d.Explanation).To(ContainSubstring("Reset voltage is too high"))
	})

	It("diagnoses the weak-stimulus case as Hypoexcitability with a fix", func() {
		n, err := neuron.New("Case D", params(func(p *neuron.Params) { p.Stimulus = 2 }))
		Expect(err).NotTo(HaveOccurred())

		d, err := diagnose.Run(n, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Problem).To(Equal(diagnose.Hypoexcitability))
		Expect(d.Recommendation).To(ContainSubstring("increasing stimulus"))
	})

	It("rejects a non-positive step count", func() {
		n, err := neuron.New("x", neuron.DefaultParams())
		Expect(err).NotTo(HaveOccurred())

		_, err = diagnose.Run(n, 0)
		Expect(err).To(MatchError(neuron.ErrInvalidSteps))
	})

	It("never invokes observers attached to the unit", func() {
		n, err := neuron.New("quiet", neuron.DefaultParams())
		Expect(err).NotTo(HaveOccurred())

		calls := 0
		n.AddObserver(neuron.ObserverFunc(func(int, float64, bool) { calls++ }))

		_, err = diagnose.Run(n, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(BeZero())
	})
})
