package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hwsim/rtlsim/engine"
	"github.com/hwsim/rtlsim/model"
	"github.com/hwsim/rtlsim/sensitivity"
	"github.com/hwsim/rtlsim/signal"
)

type countingCallback struct {
	id    signal.CallbackID
	order *[]string
	label string
}

func (c *countingCallback) ID() signal.CallbackID { return c.id }
func (c *countingCallback) Invoke() error {
	*c.order = append(*c.order, c.label)
	return nil
}

var _ = Describe("Engine", func() {
	var eng *engine.Engine

	BeforeEach(func() {
		eng = engine.New()
	})

	It("drains callbacks in FIFO order", func() {
		var order []string
		eng.Enqueue([]signal.Callback{
			&countingCallback{id: 1, order: &order, label: "a"},
			&countingCallback{id: 2, order: &order, label: "b"},
		})
		Expect(eng.Settle()).To(Succeed())
		Expect(order).To(Equal([]string{"a", "b"}))
	})

	It("deduplicates a callback already pending", func() {
		var order []string
		cb := &countingCallback{id: 1, order: &order, label: "a"}
		eng.Enqueue([]signal.Callback{cb})
		eng.Enqueue([]signal.Callback{cb})
		Expect(eng.QueueLen()).To(Equal(1))
		Expect(eng.Settle()).To(Succeed())
		Expect(order).To(Equal([]string{"a"}))
	})

	It("drives a signal end to end: WriteComb enqueues, Settle invokes", func() {
		v := signal.New(8, eng)
		var order []string
		cb := &countingCallback{id: 1, order: &order, label: "fired"}
		v.RegisterCallback(cb)

		Expect(v.WriteComb(signal.FromUint64(8, 1))).To(Succeed())
		Expect(eng.QueueLen()).To(Equal(1))
		Expect(eng.Settle()).To(Succeed())
		Expect(order).To(Equal([]string{"fired"}))
	})

	It("flops registers once per Cycle and settles afterward", func() {
		v := signal.New(8, eng)
		Expect(v.WriteShadow(signal.FromUint64(8, 0x5A))).To(Succeed())

		Expect(eng.Cycle()).To(Succeed())
		Expect(v.Read().Uint64()).To(Equal(uint64(0x5A)))
		Expect(eng.NCycles()).To(Equal(uint64(1)))
	})

	It("runs sequential blocks in declaration order before flopping", func() {
		var order []string
		eng.SetSequential([]*sensitivity.SequentialBlock{
			{Block: &model.Block{Name: "first"}, Run: func() error { order = append(order, "first"); return nil }},
			{Block: &model.Block{Name: "second"}, Run: func() error { order = append(order, "second"); return nil }},
		})
		Expect(eng.Cycle()).To(Succeed())
		Expect(order).To(Equal([]string{"first", "second"}))
	})

	It("drives reset high for two cycles then releases it", func() {
		rst := signal.New(1, eng)
		Expect(eng.Reset(rst)).To(Succeed())
		Expect(rst.Read().Uint64()).To(Equal(uint64(0)))
		Expect(eng.NCycles()).To(Equal(uint64(2)))
	})

	It("is idempotent calling Settle twice with no intervening writes", func() {
		Expect(eng.Settle()).To(Succeed())
		Expect(eng.Settle()).To(Succeed())
		Expect(eng.QueueLen()).To(Equal(0))
	})
})
