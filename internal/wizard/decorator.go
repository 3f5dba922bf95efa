package wizard

// ButtonHost receives buttons from a Decorator.
type ButtonHost interface {
	AddButton(b Button)
}

// Decorator lays out the button bar of a panel.
type Decorator func(host ButtonHost)

// AddExitCancelNext adds Exit, Cancel and Next.
func AddExitCancelNext(host ButtonHost) {
	host.AddButton(ButtonExit)
	host.AddButton(ButtonCancel)
	host.AddButton(ButtonNext)
}

// AddExitCancelPreviousNext adds Exit, Cancel, Previous and Next.
func AddExitCancelPreviousNext(host ButtonHost) {
	host.AddButton(ButtonExit)
	host.AddButton(ButtonCancel)
	host.AddButton(ButtonPrevious)
	host.AddButton(ButtonNext)
}

// AddExitCancelPreviousFinish adds Exit, Cancel, Previous and Finish.
func AddExitCancelPreviousFinish(host ButtonHost) {
	host.AddButton(ButtonExit)
	host.AddButton(ButtonCancel)
	host.AddButton(ButtonPrevious)
	host.AddButton(ButtonFinish)
}
