package sensitivity

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hwsim/rtlsim/model"
)

var _ = Describe("asRunnable", func() {
	It("takes the fast path for an exact func() error", func() {
		called := false
		blk := &model.Block{Name: "b", Fn: func() error { called = true; return nil }}
		run, err := asRunnable(blk)
		Expect(err).NotTo(HaveOccurred())
		Expect(run()).To(Succeed())
		Expect(called).To(BeTrue())
	})

	It("accepts a differently-typed zero-argument error-returning func via reflection", func() {
		type fnType func() error
		var f fnType = func() error { return nil }
		blk := &model.Block{Name: "b", Fn: f}
		_, err := asRunnable(blk)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a block whose Fn takes arguments", func() {
		blk := &model.Block{Name: "bad", File: "x.go", Line: 10, Fn: func(x int) error { return nil }}
		_, err := asRunnable(blk)
		Expect(errors.Is(err, model.ErrBlockSignature)).To(BeTrue())
	})

	It("rejects a block whose Fn does not return error", func() {
		blk := &model.Block{Name: "bad", Fn: func() int { return 0 }}
		_, err := asRunnable(blk)
		Expect(errors.Is(err, model.ErrBlockSignature)).To(BeTrue())
	})
})
