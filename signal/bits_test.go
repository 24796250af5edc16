package signal_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hwsim/rtlsim/signal"
)

var _ = Describe("Bits", func() {
	It("round-trips through FromUint64/Uint64", func() {
		b := signal.FromUint64(8, 0x5A)
		Expect(b.Width()).To(Equal(8))
		Expect(b.Uint64()).To(Equal(uint64(0x5A)))
	})

	It("truncates values above its width", func() {
		b := signal.FromUint64(4, 0xFF)
		Expect(b.Uint64()).To(Equal(uint64(0xF)))
	})

	It("slices bits LSB-first", func() {
		b := signal.FromUint64(8, 0xA5) // 1010 0101
		Expect(b.Slice(0, 0).Uint64()).To(Equal(uint64(1)))
		Expect(b.Slice(1, 1).Uint64()).To(Equal(uint64(0)))
		Expect(b.Slice(0, 3).Uint64()).To(Equal(uint64(0x5)))
		Expect(b.Slice(4, 7).Uint64()).To(Equal(uint64(0xA)))
	})

	It("writes a slice back in place", func() {
		b := signal.NewBits(8)
		b.SetSlice(0, 3, signal.FromUint64(4, 0x5))
		b.SetSlice(4, 7, signal.FromUint64(4, 0xA))
		Expect(b.Uint64()).To(Equal(uint64(0xA5)))
	})

	It("reports equality by width and contents", func() {
		a := signal.FromUint64(8, 0x5A)
		b := signal.FromUint64(8, 0x5A)
		c := signal.FromUint64(8, 0x5B)
		Expect(a.Equal(b)).To(BeTrue())
		Expect(a.Equal(c)).To(BeFalse())
	})

	It("clones independently of the source", func() {
		a := signal.FromUint64(8, 0x5A)
		b := a.Clone()
		b.SetSlice(0, 0, signal.FromUint64(1, 1))
		Expect(a.Uint64()).To(Equal(uint64(0x5A)))
		Expect(b.Uint64()).NotTo(Equal(a.Uint64()))
	})
})
