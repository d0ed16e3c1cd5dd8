package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/loomkit/loom/pkg/assets"
	"github.com/loomkit/loom/pkg/middleware"
	"github.com/loomkit/loom/pkg/resource"
	"github.com/loomkit/loom/pkg/server"
	"github.com/loomkit/loom/pkg/suspense"
	"github.com/loomkit/loom/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		manifest  string
		prefix    string
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo streaming server",
		Long: `Serve starts a demo application that exercises the full streaming
pipeline: a page with a suspense boundary whose content arrives as a
deferred fragment after a simulated data fetch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, manifest, prefix, staticDir)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&manifest, "manifest", "", "asset manifest path (optional)")
	cmd.Flags().StringVar(&prefix, "asset-prefix", "/public/", "asset URL prefix")
	cmd.Flags().StringVar(&staticDir, "static-dir", "", "directory to serve under the asset prefix (optional)")

	return cmd
}

func runServe(addr, manifestPath, prefix, staticDir string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	resolver := assets.NewPassthroughResolver(prefix)
	if manifestPath != "" {
		manifest, err := assets.Load(manifestPath)
		if err != nil {
			return err
		}
		resolver = assets.NewResolver(manifest, prefix)
		logger.Info("asset manifest loaded", "path", manifestPath, "entries", manifest.Len())
	}

	cfg := server.DefaultConfig().
		WithAddress(addr).
		WithTitle("Loom Demo").
		WithClientScript(resolver.Asset("loom.js"))

	srv := server.New(cfg, server.WithLogger(logger))
	srv.Use(middleware.Prometheus())
	srv.Use(middleware.OpenTelemetry())

	if staticDir != "" {
		srv.Static(prefix, os.DirFS(staticDir))
	}

	srv.Handle("/", homePage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// homePage renders a header immediately and defers the category list
// behind a suspense boundary fed by a simulated fetch. The resource lives
// in the request's render closure: created on the first evaluation inside
// the boundary, reused by the deferred re-render, gone with the request.
func homePage(env *suspense.Env) *vdom.VNode {
	var categories *resource.Resource[[]string]

	list := suspense.New(suspense.Config{
		Target:   suspense.TargetServer,
		Fallback: func(*suspense.Env) *vdom.VNode { return vdom.P(vdom.Text("Loading categories...")) },
		Children: func(e *suspense.Env) *vdom.VNode {
			if categories == nil {
				categories = resource.New(e, fetchCategories)
			}
			return categoryList(categories)
		},
	})

	return vdom.Main(
		vdom.Header(vdom.H1(vdom.Text("Loom Demo"))),
		list.Render(env),
	)
}

func fetchCategories() ([]string, error) {
	time.Sleep(300 * time.Millisecond) // simulated upstream call
	return []string{"books", "games", "tools"}, nil
}

func categoryList(categories *resource.Resource[[]string]) *vdom.VNode {
	return resource.Match(categories,
		resource.OnLoadingOrPending[[]string](func() *vdom.VNode {
			return vdom.Ul()
		}),
		resource.OnError[[]string](func(err error) *vdom.VNode {
			return vdom.P(vdom.Text("failed: " + err.Error()))
		}),
		resource.OnReady(func(items []string) *vdom.VNode {
			children := make([]any, 0, len(items))
			for _, item := range items {
				children = append(children, vdom.Li(vdom.Text(item)))
			}
			return vdom.Ul(children...)
		}),
	)
}
