package diag_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hwsim/rtlsim/diag"
	"github.com/hwsim/rtlsim/model"
	"github.com/hwsim/rtlsim/rtlsim"
)

var _ = Describe("Server", func() {
	var srv *httptest.Server

	BeforeEach(func() {
		m, err := model.LoadFixture("../model/testdata/register.yaml")
		Expect(err).NotTo(HaveOccurred())
		sim, err := rtlsim.New(m, rtlsim.WithDevDiagnostics())
		Expect(err).NotTo(HaveOccurred())
		srv = httptest.NewServer(diag.New(sim).Handler())
	})

	AfterEach(func() {
		srv.Close()
	})

	It("lists signals as JSON", func() {
		resp, err := http.Get(srv.URL + "/signals")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var views []map[string]interface{}
		Expect(json.NewDecoder(resp.Body).Decode(&views)).To(Succeed())
		Expect(views).To(HaveLen(2)) // in, out
	})

	It("reports cycle count and queue length", func() {
		resp, err := http.Get(srv.URL + "/cycles")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		var body map[string]interface{}
		Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
		Expect(body["ncycles"]).To(Equal(float64(0)))
	})

	It("renders a text trace", func() {
		resp, err := http.Get(srv.URL + "/trace")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("text/plain"))
	})

	It("reports process health", func() {
		resp, err := http.Get(srv.URL + "/health")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
	})
})
