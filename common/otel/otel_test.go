package otel

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex28786/the-reef/core/config"
)

var _ = Describe("Setup", func() {
	It("does nothing without an endpoint", func() {
		telemetry, err := Setup(context.Background(), config.OTelConfig{ServiceName: "reef"}, "development")

		Expect(err).NotTo(HaveOccurred())
		Expect(telemetry).To(BeNil())
	})
})

var _ = Describe("ParseHeaders", func() {
	It("splits comma separated pairs and trims them", func() {
		Expect(ParseHeaders(" api-key = abc ,x-team=reef")).To(Equal(map[string]string{
			"api-key": "abc",
			"x-team":  "reef",
		}))
	})

	It("keeps '=' inside values", func() {
		Expect(ParseHeaders("authorization=Basic dXNlcjpwYXNz==")).To(HaveKeyWithValue("authorization", "Basic dXNlcjpwYXNz=="))
	})

	It("skips malformed pairs", func() {
		Expect(ParseHeaders("novalue,=empty,ok=1")).To(Equal(map[string]string{"ok": "1"}))
	})

	It("returns an empty map for an empty string", func() {
		Expect(ParseHeaders("")).To(BeEmpty())
	})
})

var _ = Describe("signalURL", func() {
	It("joins the endpoint and signal path", func() {
		Expect(signalURL("http://collector:4318", "traces")).To(Equal("http://collector:4318/v1/traces"))
		Expect(signalURL("http://collector:4318/", "logs")).To(Equal("http://collector:4318/v1/logs"))
	})
})

var _ = Describe("Sampler", func() {
	DescribeTable("describes the configured ratio",
		func(ratio float64, want string) {
			Expect(Sampler(ratio).Description()).To(ContainSubstring(want))
		},
		Entry("zero keeps everything", 0.0, "AlwaysOnSampler"),
		Entry("one keeps everything", 1.0, "AlwaysOnSampler"),
		Entry("a fraction is ratio based", 0.25, "TraceIDRatioBased{0.25}"),
	)
})
