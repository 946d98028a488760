// Package bootstrap runs a storefront binary through a uniform lifecycle:
// validate config, start components, run hooks, do the work, shut down.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(storeComponent)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return printCart(ctx)
//	})
//
// A failed startup still runs the OnStop hooks. Callers that give up
// before RunTask call Shutdown so those hooks run.
package bootstrap
