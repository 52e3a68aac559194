package optigo_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/optigo"
	"github.com/hupe1980/optigo/cache"
	"github.com/hupe1980/optigo/model"
	"github.com/hupe1980/optigo/testutil"
)

func ExampleCachingOptimizer() {
	ctx := context.Background()

	// Build the model before any solver exists.
	opt := optigo.New(cache.New())

	x, err := opt.AddVariable()
	if err != nil {
		log.Fatal(err)
	}

	if _, err := opt.AddConstraint(model.Variable{Index: x}, model.GreaterThan{Lower: 0}); err != nil {
		log.Fatal(err)
	}
	if err := opt.Set(model.ObjectiveSense{}, nil, model.MaxSense); err != nil {
		log.Fatal(err)
	}
	if err := opt.Set(model.ObjectiveFunction{}, nil, model.ScalarAffine{
		Terms: []model.AffineTerm{{Coefficient: 2, Variable: x}},
	}); err != nil {
		log.Fatal(err)
	}

	// Hand over a solver; Automatic mode attaches it lazily at solve time.
	if err := opt.ResetOptimizer(testutil.New()); err != nil {
		log.Fatal(err)
	}
	if err := opt.Optimize(ctx); err != nil {
		log.Fatal(err)
	}

	status, err := opt.Get(model.TerminationStatus{}, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(opt.State(), status)
	// Output: AttachedOptimizer Optimal
}

func ExampleCachingOptimizer_manual() {
	opt := optigo.New(cache.New(), optigo.WithMode(optigo.Manual))

	if _, err := opt.AddVariable(); err != nil {
		log.Fatal(err)
	}

	// Manual mode: every transition is explicit.
	if err := opt.ResetOptimizer(testutil.New()); err != nil {
		log.Fatal(err)
	}
	fmt.Println(opt.State())

	if err := opt.AttachOptimizer(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(opt.State())

	// Output:
	// EmptyOptimizer
	// AttachedOptimizer
}
