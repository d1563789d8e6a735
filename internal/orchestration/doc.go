// Package orchestration runs the selected Riemann calculators back-to-back,
// times them and checks that their results agree. It decouples business logic
// from presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
