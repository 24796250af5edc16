package slicelower_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hwsim/rtlsim/bind"
	"github.com/hwsim/rtlsim/model"
	"github.com/hwsim/rtlsim/netbuild"
	"github.com/hwsim/rtlsim/signal"
	"github.com/hwsim/rtlsim/slicelower"
)

type noopNotifier struct{}

func (noopNotifier) Enqueue([]signal.Callback)       {}
func (noopNotifier) RecordShadowWrite(*signal.Value) {}

type fakePrime struct {
	primed []signal.Callback
}

func (p *fakePrime) EnqueueOne(cb signal.Callback) { p.primed = append(p.primed, cb) }

var _ = Describe("Lower", func() {
	It("synthesizes a closure that copies a bit slice on Run", func() {
		arena := model.NewArena()
		src := arena.AddNode(&model.Node{Name: "src", Width: 8})
		dst := arena.AddNode(&model.Node{Name: "dst", Width: 1})
		root := &model.Module{Name: "root", Ports: []model.NodeID{src, dst}}
		arena.AddModule(root)

		_, err := arena.AddEdge(&model.Edge{
			Src: src, Dst: dst,
			SrcRange: &model.Range{Start: 3, End: 3},
		})
		Expect(err).NotTo(HaveOccurred())

		res, err := netbuild.Build(arena, root)
		Expect(err).NotTo(HaveOccurred())
		Expect(bind.Bind(arena, res, noopNotifier{})).To(Succeed())

		prime := &fakePrime{}
		closures, err := slicelower.Lower(arena, res, prime)
		Expect(err).NotTo(HaveOccurred())
		Expect(closures).To(HaveLen(1))
		Expect(prime.primed).To(HaveLen(1))

		Expect(arena.Node(src).Signal.WriteComb(signal.FromUint64(8, 0x08))).To(Succeed()) // bit 3 set
		Expect(closures[0].Run()).To(Succeed())
		Expect(arena.Node(dst).Signal.Read().Uint64()).To(Equal(uint64(1)))
	})

	It("performs a one-time write with no closure when the source is constant", func() {
		arena := model.NewArena()
		src := arena.AddNode(&model.Node{Name: "src", Width: 8, IsConstant: true, ConstValue: 0x08})
		dst := arena.AddNode(&model.Node{Name: "dst", Width: 1})
		root := &model.Module{Name: "root", Wires: []model.NodeID{dst}}
		arena.AddModule(root)

		_, err := arena.AddEdge(&model.Edge{
			Src: src, Dst: dst,
			SrcRange: &model.Range{Start: 3, End: 3},
		})
		Expect(err).NotTo(HaveOccurred())

		res, err := netbuild.Build(arena, root)
		Expect(err).NotTo(HaveOccurred())
		Expect(bind.Bind(arena, res, noopNotifier{})).To(Succeed())

		closures, err := slicelower.Lower(arena, res, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(closures).To(BeEmpty())
		Expect(arena.Node(dst).Signal.Read().Uint64()).To(Equal(uint64(1)))
	})

	It("rejects a slice edge whose ranges disagree in width at construction time", func() {
		arena := model.NewArena()
		src := arena.AddNode(&model.Node{Name: "src", Width: 8})
		dst := arena.AddNode(&model.Node{Name: "dst", Width: 2})
		_, err := arena.AddEdge(&model.Edge{
			Src: src, Dst: dst,
			SrcRange: &model.Range{Start: 0, End: 0},
		})
		Expect(err).To(HaveOccurred())
	})
})
