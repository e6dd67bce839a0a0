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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kkellyy/paasta/pkg/util"
)

var _ = Describe("GetUsername", func() {
	It("Should return a non-empty user name", func() {
		Expect(util.GetUsername()).NotTo(BeEmpty())
	})
})

var _ = Describe("GetFQDN", func() {
	It("Should return a non-empty host name", func() {
		Expect(util.GetFQDN()).NotTo(BeEmpty())
	})
})

var _ = Describe("ContainsString", func() {
	slice := []string{"pyspark", "spark-shell"}

	Context("When the string is in the slice", func() {
		It("Should return true", func() {
			Expect(util.ContainsString(slice, "pyspark")).To(BeTrue())
		})
	})

	Context("When the string is not in the slice", func() {
		It("Should return false", func() {
			Expect(util.ContainsString(slice, "jupyter")).To(BeFalse())
		})
	})
})
