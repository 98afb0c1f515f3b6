// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package multiweb_test

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/multiweb"
	"github.com/xmidt-org/multiweb/webfront"
	"github.com/xmidt-org/multiweb/webmetrics"
	"github.com/xmidt-org/multiweb/webplugin"
	"github.com/xmidt-org/multiweb/webroute"
	"github.com/xmidt-org/multiweb/webtenant"
	"github.com/xmidt-org/multiweb/webtest"
	"github.com/xmidt-org/multiweb/webtest/configtest"
	"github.com/xmidt-org/multiweb/webwire"
	"go.uber.org/fx"
)

const textPreamble = "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\n"

type docHandler struct{}

func (docHandler) ServeRequest(_ *webwire.Request, w webwire.ResponseWriter) {
	webwire.WriteText(w, "document")
}

type ModuleSuite struct {
	configtest.Suite

	addrs   chan net.Addr
	loader  *webtenant.Loader
	metrics *webmetrics.Metrics
}

func (suite *ModuleSuite) SetupTest() {
	suite.Suite.SetupTest()
	suite.addrs = make(chan net.Addr, 2)
	suite.loader = nil
	suite.metrics = nil
}

// freePort finds a port that is very likely to be free for a tenant to be assigned to
func (suite *ModuleSuite) freePort() int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	suite.Require().NoError(err)
	defer l.Close()
	return webtest.Port(l.Addr())
}

func (suite *ModuleSuite) options(more ...fx.Option) []fx.Option {
	return append(
		[]fx.Option{
			multiweb.Provide[multiweb.Config](),
			multiweb.ProvideHost(multiweb.Builtins()),
			fx.Provide(
				fx.Annotated{
					Name: "frontend",
					Target: func() []webfront.ListenerMiddleware {
						return []webfront.ListenerMiddleware{webtest.ListenCapture(suite.addrs)}
					},
				},
			),
			multiweb.Module(),
			fx.Populate(&suite.loader, &suite.metrics),
		},
		more...,
	)
}

func (suite *ModuleSuite) addr() net.Addr {
	addr, ok := webtest.ListenReceive(suite.addrs, time.Second)
	suite.Require().True(ok)
	return addr
}

func (suite *ModuleSuite) TestGlobal() {
	suite.YAML(`
server:
  host: 127.0.0.1
  ports: [0]
  strategy: pool
  workers: 2
mode: global
builtins: true
`)

	app := suite.Fxtest(suite.options()...)
	app.RequireStart()
	defer app.RequireStop()

	addr := suite.addr()
	response, err := webtest.Exchange(addr, "GET /test HTTP/1.1\r\n\r\n")
	suite.Require().NoError(err)
	suite.Equal(textPreamble+"GET response from multiweb TestHandler\n", response)

	response, err = webtest.Exchange(addr, "POST /test HTTP/1.1\r\n\r\n")
	suite.Require().NoError(err)
	suite.Equal(textPreamble+"POST response from multiweb TestHandler\n", response)

	tenants := suite.loader.Tenants()
	suite.Require().Len(tenants, 1)
	suite.Equal(multiweb.BuiltinSource, tenants[0].Package)

	port := strconv.Itoa(webtest.Port(addr))
	suite.Eventually(
		func() bool {
			return testutil.ToFloat64(suite.metrics.Requests.WithLabelValues(port, string(webfront.OutcomeHit))) == 2.0
		},
		time.Second,
		10*time.Millisecond,
	)
}

func (suite *ModuleSuite) TestTenant() {
	var (
		port     = suite.freePort()
		dir      = suite.T().TempDir()
		packages = filepath.Join(dir, "docs.so")
	)

	suite.Require().NoError(os.WriteFile(packages, []byte("not really a plugin"), 0o600))
	suite.YAML(fmt.Sprintf(`
server:
  host: 127.0.0.1
  ports: [%d]
tenants:
  - package: %s
    port: %d
  - package: %s
    port: %d
`, port, packages, port, filepath.Join(dir, "missing.so"), port))

	opener := webtenant.Opener(func(path string) (webplugin.Archive, error) {
		return webplugin.Symbols{
			webplugin.ManifestSymbol: "handlers:\n  - type: Doc\n    paths: [/doc]\n  - type: TestHandler\n    paths: [/host]\n",
			"Doc":                    func() webroute.Handler { return docHandler{} },
		}, nil
	})

	app := suite.Fxtest(suite.options(fx.Provide(func() webtenant.Opener { return opener }))...)
	app.RequireStart()
	defer app.RequireStop()

	addr := suite.addr()
	suite.Equal(port, webtest.Port(addr))

	response, err := webtest.Exchange(addr, "GET /doc HTTP/1.1\r\n\r\n")
	suite.Require().NoError(err)
	suite.Equal(textPreamble+"document\n", response)

	response, err = webtest.Exchange(addr, "GET /host HTTP/1.1\r\n\r\n")
	suite.Require().NoError(err)
	suite.Equal(textPreamble+"GET response from multiweb TestHandler\n", response)

	response, err = webtest.Exchange(addr, "GET /test HTTP/1.1\r\n\r\n")
	suite.Require().NoError(err)
	suite.Equal("HTTP/1.1 200 OK\r\nContent-Type: text/html\r\n\r\n"+webwire.NotFoundBody+"\n", response)

	tenants := suite.loader.Tenants()
	suite.Require().Len(tenants, 1)
	suite.Equal(packages, tenants[0].Package)
	suite.Equal(2, tenants[0].Routes)

	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.Tenants.WithLabelValues(strconv.Itoa(port), webmetrics.TenantLoaded)))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.Tenants.WithLabelValues(strconv.Itoa(port), webmetrics.TenantSkipped)))
}

func (suite *ModuleSuite) TestTenantFailure() {
	var (
		port = suite.freePort()
		bad  = filepath.Join(suite.T().TempDir(), "docs.jar")
	)

	suite.Require().NoError(os.WriteFile(bad, nil, 0o600))
	suite.YAML(fmt.Sprintf(`
server:
  host: 127.0.0.1
  ports: [%d]
tenants:
  - package: %s
    port: %d
`, port, bad, port))

	app := suite.Fxtest(suite.options()...)
	app.RequireStart()
	defer app.RequireStop()

	response, err := webtest.Exchange(suite.addr(), "GET /doc HTTP/1.1\r\n\r\n")
	suite.Require().NoError(err)
	suite.Equal("HTTP/1.1 200 OK\r\nContent-Type: text/html\r\n\r\n"+webwire.NotFoundBody+"\n", response)

	suite.Empty(suite.loader.Tenants())
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.Tenants.WithLabelValues(strconv.Itoa(port), webmetrics.TenantFailed)))
}

func (suite *ModuleSuite) TestInvalidConfig() {
	suite.YAML(`
server:
  ports: []
`)

	app := suite.Fx(suite.options()...)
	suite.Error(app.Err())
}

func TestModule(t *testing.T) {
	suite.Run(t, new(ModuleSuite))
}
