/*
Copyright 2026 The PaaSTA Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package util_test

import (
	"fmt"
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kkellyy/paasta/pkg/util"
)

var _ = Describe("PickRandomPort", func() {
	It("Should return a bindable port", func() {
		port, err := util.PickRandomPort("spark")
		Expect(err).NotTo(HaveOccurred())
		Expect(port).To(BeNumerically(">", 0))

		l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		Expect(err).NotTo(HaveOccurred())
		l.Close()
	})

	It("Should be stable for the same service when the port is free", func() {
		first, err := util.PickRandomPort("stable-service")
		Expect(err).NotTo(HaveOccurred())
		second, err := util.PickRandomPort("stable-service")
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("Should fall back to an ephemeral port when the preferred one is taken", func() {
		port, err := util.PickRandomPort("busy-service")
		Expect(err).NotTo(HaveOccurred())

		l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		Expect(err).NotTo(HaveOccurred())
		defer l.Close()

		other, err := util.PickRandomPort("busy-service")
		Expect(err).NotTo(HaveOccurred())
		Expect(other).NotTo(Equal(port))
	})
})
