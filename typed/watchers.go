package typed

import (
	"github.com/delaneyj/watchparty/vine"
)

type WatchFunc1[T0, O any] func(T0) O

func Watch1[T0, O any](
	sc *vine.Scope,
	dep0 DepFunc[T0],
	compute WatchFunc1[T0, O],
	cb func(newVal, oldVal O),
	opts vine.WatcherOptions,
) func() {
	getter := func(s *vine.Scope) any {
		return compute(
			dep0(s),
		)
	}
	w := vine.NewWatcher(sc, vine.GetterFunc(getter), adapt(cb), opts)
	return w.Teardown
}

type WatchFunc2[T0, T1, O any] func(T0, T1) O

func Watch2[T0, T1, O any](
	sc *vine.Scope,
	dep0 DepFunc[T0],
	dep1 DepFunc[T1],
	compute WatchFunc2[T0, T1, O],
	cb func(newVal, oldVal O),
	opts vine.WatcherOptions,
) func() {
	getter := func(s *vine.Scope) any {
		return compute(
			dep0(s),
			dep1(s),
		)
	}
	w := vine.NewWatcher(sc, vine.GetterFunc(getter), adapt(cb), opts)
	return w.Teardown
}

type WatchFunc3[T0, T1, T2, O any] func(T0, T1, T2) O

func Watch3[T0, T1, T2, O any](
	sc *vine.Scope,
	dep0 DepFunc[T0],
	dep1 DepFunc[T1],
	dep2 DepFunc[T2],
	compute WatchFunc3[T0, T1, T2, O],
	cb func(newVal, oldVal O),
	opts vine.WatcherOptions,
) func() {
	getter := func(s *vine.Scope) any {
		return compute(
			dep0(s),
			dep1(s),
			dep2(s),
		)
	}
	w := vine.NewWatcher(sc, vine.GetterFunc(getter), adapt(cb), opts)
	return w.Teardown
}

type WatchFunc4[T0, T1, T2, T3, O any] func(T0, T1, T2, T3) O

func Watch4[T0, T1, T2, T3, O any](
	sc *vine.Scope,
	dep0 DepFunc[T0],
	dep1 DepFunc[T1],
	dep2 DepFunc[T2],
	dep3 DepFunc[T3],
	compute WatchFunc4[T0, T1, T2, T3, O],
	cb func(newVal, oldVal O),
	opts vine.WatcherOptions,
) func() {
	getter := func(s *vine.Scope) any {
		return compute(
			dep0(s),
			dep1(s),
			dep2(s),
			dep3(s),
		)
	}
	w := vine.NewWatcher(sc, vine.GetterFunc(getter), adapt(cb), opts)
	return w.Teardown
}

type WatchFunc5[T0, T1, T2, T3, T4, O any] func(T0, T1, T2, T3, T4) O

func Watch5[T0, T1, T2, T3, T4, O any](
	sc *vine.Scope,
	dep0 DepFunc[T0],
	dep1 DepFunc[T1],
	dep2 DepFunc[T2],
	dep3 DepFunc[T3],
	dep4 DepFunc[T4],
	compute WatchFunc5[T0, T1, T2, T3, T4, O],
	cb func(newVal, oldVal O),
	opts vine.WatcherOptions,
) func() {
	getter := func(s *vine.Scope) any {
		return compute(
			dep0(s),
			dep1(s),
			dep2(s),
			dep3(s),
			dep4(s),
		)
	}
	w := vine.NewWatcher(sc, vine.GetterFunc(getter), adapt(cb), opts)
	return w.Teardown
}

type WatchFunc6[T0, T1, T2, T3, T4, T5, O any] func(T0, T1, T2, T3, T4, T5) O

func Watch6[T0, T1, T2, T3, T4, T5, O any](
	sc *vine.Scope,
	dep0 DepFunc[T0],
	dep1 DepFunc[T1],
	dep2 DepFunc[T2],
	dep3 DepFunc[T3],
	dep4 DepFunc[T4],
	dep5 DepFunc[T5],
	compute WatchFunc6[T0, T1, T2, T3, T4, T5, O],
	cb func(newVal, oldVal O),
	opts vine.WatcherOptions,
) func() {
	getter := func(s *vine.Scope) any {
		return compute(
			dep0(s),
			dep1(s),
			dep2(s),
			dep3(s),
			dep4(s),
			dep5(s),
		)
	}
	w := vine.NewWatcher(sc, vine.GetterFunc(getter), adapt(cb), opts)
	return w.Teardown
}

type WatchFunc7[T0, T1, T2, T3, T4, T5, T6, O any] func(T0, T1, T2, T3, T4, T5, T6) O

func Watch7[T0, T1, T2, T3, T4, T5, T6, O any](
	sc *vine.Scope,
	dep0 DepFunc[T0],
	dep1 DepFunc[T1],
	dep2 DepFunc[T2],
	dep3 DepFunc[T3],
	dep4 DepFunc[T4],
	dep5 DepFunc[T5],
	dep6 DepFunc[T6],
	compute WatchFunc7[T0, T1, T2, T3, T4, T5, T6, O],
	cb func(newVal, oldVal O),
	opts vine.WatcherOptions,
) func() {
	getter := func(s *vine.Scope) any {
		return compute(
			dep0(s),
			dep1(s),
			dep2(s),
			dep3(s),
			dep4(s),
			dep5(s),
			dep6(s),
		)
	}
	w := vine.NewWatcher(sc, vine.GetterFunc(getter), adapt(cb), opts)
	return w.Teardown
}

type WatchFunc8[T0, T1, T2, T3, T4, T5, T6, T7, O any] func(T0, T1, T2, T3, T4, T5, T6, T7) O

func Watch8[T0, T1, T2, T3, T4, T5, T6, T7, O any](
	sc *vine.Scope,
	dep0 DepFunc[T0],
	dep1 DepFunc[T1],
	dep2 DepFunc[T2],
	dep3 DepFunc[T3],
	dep4 DepFunc[T4],
	dep5 DepFunc[T5],
	dep6 DepFunc[T6],
	dep7 DepFunc[T7],
	compute WatchFunc8[T0, T1, T2, T3, T4, T5, T6, T7, O],
	cb func(newVal, oldVal O),
	opts vine.WatcherOptions,
) func() {
	getter := func(s *vine.Scope) any {
		return compute(
			dep0(s),
			dep1(s),
			dep2(s),
			dep3(s),
			dep4(s),
			dep5(s),
			dep6(s),
			dep7(s),
		)
	}
	w := vine.NewWatcher(sc, vine.GetterFunc(getter), adapt(cb), opts)
	return w.Teardown
}
