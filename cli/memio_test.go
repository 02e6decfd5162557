package main

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("parseTarget", func() {
	ginkgo.DescribeTable("should split addresses from symbols",
		func(input string, addr uint32, symbol string) {
			a, s, err := parseTarget(input)
			Expect(err).ToNot(HaveOccurred())
			Expect(a).To(Equal(addr))
			Expect(s).To(Equal(symbol))
		},
		ginkgo.Entry("hex address", "0x80001000", uint32(0x80001000), ""),
		ginkgo.Entry("upper case prefix", "0X8000ABCD", uint32(0x8000abcd), ""),
		ginkgo.Entry("symbol", "player", uint32(0), "player"),
		ginkgo.Entry("symbol made of hex letters", "beef", uint32(0), "beef"),
		ginkgo.Entry("symbol with offset", "player+0x34", uint32(0x34), "player"),
		ginkgo.Entry("hex letter symbol with offset", "add+8", uint32(8), "add"),
	)

	ginkgo.DescribeTable("should reject malformed targets",
		func(input string) {
			_, _, err := parseTarget(input)
			Expect(err).To(HaveOccurred())
		},
		ginkgo.Entry("bad address", "0xzz"),
		ginkgo.Entry("bad offset", "player+zz"),
		ginkgo.Entry("missing symbol", "+4"),
	)
})
