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

package util

import (
	"fmt"
	"hash/fnv"
	"net"
)

const (
	portRangeStart = 33000
	portRangeSize  = 25000
)

// PickRandomPort reserves a free local port for the Spark UI. The preferred
// port is derived from the service name so repeated runs of the same service
// land on the same port when it is free; a concurrently running invocation
// holding the preferred port pushes us to a kernel-assigned ephemeral port
// instead, which keeps container names unique per host.
func PickRandomPort(service string) (int, error) {
	h := fnv.New32()
	h.Write([]byte(service))
	preferred := portRangeStart + int(h.Sum32())%portRangeSize

	if port, err := reservePort(preferred); err == nil {
		return port, nil
	}
	return reservePort(0)
}

func reservePort(port int) (int, error) {
	l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
