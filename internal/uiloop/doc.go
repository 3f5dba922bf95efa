// Package uiloop provides the single UI thread of the wallet application.
//
// Every mutation of view or model state and every event bus call happens in
// a task running on the Loop's goroutine. Background work, such as waiting
// for a hardware wallet, hands its result back with Post:
//
//	device.RequestConfirmation(op, func(res device.Result) {
//	    _ = loop.Post(func(ctx context.Context) {
//	        if !panel.Alive(gen) {
//	            return // panel was torn down while we waited
//	        }
//	        panel.ShowResult(ctx, res)
//	    })
//	})
//
// Tasks receive a context marked as belonging to the loop. OnLoop reports the
// mark, which is how the event bus and views check their thread confinement.
package uiloop
