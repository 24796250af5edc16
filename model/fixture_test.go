package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hwsim/rtlsim/model"
)

var _ = Describe("LoadFixture", func() {
	It("loads onewire.yaml as a single root module with no blocks", func() {
		root, err := model.LoadFixture("testdata/onewire.yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(root.IsElaborated()).To(BeTrue())
		Expect(root.RootModule().Ports).To(HaveLen(2))
		Expect(root.RootModule().Combinational).To(BeEmpty())
	})

	It("loads register.yaml with one tick block", func() {
		root, err := model.LoadFixture("testdata/register.yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(root.RootModule().TickBlocks).To(HaveLen(1))
	})

	It("loads registerchain3.yaml with three chained tick blocks", func() {
		root, err := model.LoadFixture("testdata/registerchain3.yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(root.RootModule().TickBlocks).To(HaveLen(3))
		Expect(root.RootModule().Wires).To(HaveLen(2))
	})

	It("loads splitter8.yaml with eight slice edges and no blocks", func() {
		root, err := model.LoadFixture("testdata/splitter8.yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(root.RootModule().Ports).To(HaveLen(9))
		Expect(root.RootModule().Combinational).To(BeEmpty())
	})

	It("loads ripplecarryadder4.yaml with four full-adder blocks", func() {
		root, err := model.LoadFixture("testdata/ripplecarryadder4.yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(root.RootModule().Combinational).To(HaveLen(4))
		for _, blk := range root.RootModule().Combinational {
			Expect(blk.Reads).To(HaveLen(3))
			Expect(blk.Writes).To(HaveLen(2))
		}
	})

	It("loads gcd.yaml with one tick block and a designated reset-free start input", func() {
		root, err := model.LoadFixture("testdata/gcd.yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(root.RootModule().TickBlocks).To(HaveLen(1))
		Expect(root.Reset()).To(Equal(model.NoNode))
	})

	It("rejects loading a fixture file that does not exist", func() {
		_, err := model.LoadFixture("testdata/does_not_exist.yaml")
		Expect(err).To(HaveOccurred())
	})
})
