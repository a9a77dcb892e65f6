// Package pipeline implements the per-model task graph: Load -> Parse ->
// BuildSymbols -> (EmitClient || EmitShapes || EmitErrors || EmitEndpoint
// || EmitReadme). Run takes one already-built model and fans out across
// its selected services, and across each service's emit stages, with
// errgroup and no limit on the number of concurrent goroutines; there is
// no worker pool spanning several models.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	smithy "github.com/smithy-gen/sdkgen"
	"github.com/smithy-gen/sdkgen/codegen"
)

// Orchestrator drives one invocation of the generator over a source
// directory of model files, emitting one output tree per selected service.
type Orchestrator struct {
	OutDir  string
	Force   bool
	Hooks   *HookSet
	Logger  *zap.Logger
	Issues  *smithy.IssuesBag
	Traits  *smithy.TraitRegistry

	RunId string
}

// NewOrchestrator builds an orchestrator with a fresh run id and zap's
// production logger (JSON-encoded, Info level and above).
func NewOrchestrator(outDir string, force bool, policy smithy.IssuePolicy) (*Orchestrator, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return &Orchestrator{
		OutDir: outDir,
		Force:  force,
		Hooks:  DefaultHooks(),
		Logger: logger,
		Issues: smithy.NewIssuesBag(policy),
		Traits: smithy.NewTraitRegistry(),
		RunId:  uuid.NewString(),
	}, nil
}

// LoadModels reads every "*.json" file in srcDir (other than a partitions
// file, which the CLI handles as its own task) and merges them into a
// single AST.
func (o *Orchestrator) LoadModels(srcDir string) (*smithy.AST, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("reading model directory %s: %w", srcDir, err)
	}
	merged := &smithy.AST{}
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if entry.Name() == "sdk-partitions.json" {
			continue
		}
		path := filepath.Join(srcDir, entry.Name())
		ast, err := smithy.LoadAST(path)
		if err != nil {
			return nil, err
		}
		if err := merged.Merge(ast); err != nil {
			return nil, fmt.Errorf("merging %s: %w", path, err)
		}
		loaded++
		o.Logger.Debug("loaded model file", zap.String("path", path), zap.String("run", o.RunId))
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no model files found in %s", srcDir)
	}
	return merged, nil
}

// BuildSymbols runs the Parse and BuildSymbols stages of the task graph.
func (o *Orchestrator) BuildSymbols(ast *smithy.AST) (*smithy.Model, *smithy.SymbolsProvider, error) {
	model, err := smithy.BuildModel(ast, o.Traits, o.Issues)
	if err != nil {
		return nil, nil, err
	}
	if o.Issues.Policy() == smithy.IssuePolicyAbort && o.Issues.Err() != nil {
		return nil, nil, o.Issues.Err()
	}
	return model, smithy.NewSymbolsProvider(model), nil
}

// serviceNames returns every service shape found in the model, regardless
// of ServiceFilter -- Run applies the filter per service.
func serviceNames(model *smithy.Model) []smithy.ShapeId {
	var out []smithy.ShapeId
	for _, id := range model.AllShapeIds() {
		st, ok := model.ShapeType(id)
		if !ok {
			continue
		}
		if _, ok := st.(*smithy.ServiceShape); ok {
			out = append(out, id)
		}
	}
	return smithy.SortedShapeIds(out)
}

// ServiceResult reports the outcome of one service's emit fan-out.
type ServiceResult struct {
	ServiceId   smithy.ShapeId
	ServiceName string
	Err         error
}

// Run executes EmitClient || EmitShapes || EmitErrors || EmitEndpoint ||
// EmitReadme for every service selected by requestedServices (an empty
// list means "all services the hook set's ServiceFilter accepts").
func (o *Orchestrator) Run(ctx context.Context, model *smithy.Model, sym *smithy.SymbolsProvider, requestedServices []string) ([]ServiceResult, error) {
	wanted := make(map[string]bool, len(requestedServices))
	for _, s := range requestedServices {
		wanted[s] = true
	}

	var targets []smithy.ShapeId
	for _, id := range serviceNames(model) {
		name := model.Name(id)
		if len(wanted) > 0 && !wanted[shortName(name)] {
			continue
		}
		if !o.Hooks.ServiceFilter(sym, id) {
			continue
		}
		targets = append(targets, id)
	}

	results := make([]ServiceResult, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, serviceId := range targets {
		i, serviceId := i, serviceId
		g.Go(func() error {
			name := shortName(model.Name(serviceId))
			err := o.emitService(gctx, model, sym, serviceId, name)
			results[i] = ServiceResult{ServiceId: serviceId, ServiceName: name, Err: err}
			if err != nil {
				o.Logger.Error("service emission failed", zap.String("service", name), zap.Error(err), zap.String("run", o.RunId))
			} else {
				o.Logger.Info("service emitted", zap.String("service", name), zap.String("run", o.RunId))
			}
			return nil // collected per-service in results, not fatal to the group
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func shortName(absolute string) string {
	if idx := strings.LastIndexByte(absolute, '#'); idx >= 0 {
		return absolute[idx+1:]
	}
	return absolute
}

// emitService runs one service's EmitClient/EmitShapes/EmitErrors/
// EmitEndpoint/EmitReadme stages concurrently, collecting all five outcomes
// with errgroup before writing anything, so a single emitter failure does
// not leave a half-written output tree.
func (o *Orchestrator) emitService(ctx context.Context, model *smithy.Model, sym *smithy.SymbolsProvider, serviceId smithy.ShapeId, serviceName string) error {
	operationIds, err := sym.OperationsOf(serviceId)
	if err != nil {
		return fmt.Errorf("resolving operations of %s: %w", serviceName, err)
	}
	errorIds, err := collectServiceErrors(model, sym, serviceId, operationIds)
	if err != nil {
		return err
	}
	shapeIds := reachableShapes(model, sym, operationIds, errorIds)

	base := codegen.NewBaseEmitter(o.OutDir, o.Force)

	type emitted struct {
		filename string
		content  string
	}
	outputs := make([]emitted, 5)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		e := codegen.NewClientEmitter(base, model, sym)
		out, err := e.Emit(serviceId, operationIds)
		if err != nil {
			return fmt.Errorf("emitting client for %s: %w", serviceName, err)
		}
		out = o.Hooks.ClientScriptHead(sym, serviceId) + out
		outputs[0] = emitted{codegen.ServiceFileName(serviceName, "client"), out}
		return nil
	})
	g.Go(func() error {
		e := codegen.NewShapesEmitter(base, model, sym)
		out, err := e.Emit(serviceName, shapeIds)
		if err != nil {
			return fmt.Errorf("emitting shapes for %s: %w", serviceName, err)
		}
		out = o.Hooks.ServiceScriptHead(sym, serviceId) + out
		outputs[1] = emitted{codegen.ServiceFileName(serviceName, "shapes"), out}
		return nil
	})
	g.Go(func() error {
		e := codegen.NewErrorsEmitter(base, model, sym)
		out, err := e.Emit(serviceName, errorIds)
		if err != nil {
			return fmt.Errorf("emitting errors for %s: %w", serviceName, err)
		}
		outputs[2] = emitted{codegen.ServiceFileName(serviceName, "errors"), out}
		return nil
	})
	g.Go(func() error {
		e := codegen.NewEndpointEmitter(base, sym)
		out, err := e.Emit(serviceId)
		if err != nil {
			return fmt.Errorf("emitting endpoint resolver for %s: %w", serviceName, err)
		}
		out = o.Hooks.EndpointScriptHead(sym, serviceId) + out
		outputs[3] = emitted{codegen.ServiceFileName(serviceName, "endpoint"), out}
		return nil
	})
	g.Go(func() error {
		e := codegen.NewReadmeEmitter(base, sym)
		out, err := e.Emit(serviceId, serviceName)
		if err != nil {
			return fmt.Errorf("emitting readme for %s: %w", serviceName, err)
		}
		out = o.Hooks.ReadmeWriter(sym, serviceId, out)
		outputs[4] = emitted{filepath.Join(serviceName, "README.md"), out}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	for _, out := range outputs {
		if err := base.WriteFile(out.filename, out.content); err != nil {
			return err
		}
	}
	return nil
}

func collectServiceErrors(model *smithy.Model, sym *smithy.SymbolsProvider, serviceId smithy.ShapeId, operationIds []smithy.ShapeId) ([]smithy.ShapeId, error) {
	st, _ := model.ShapeType(serviceId)
	svc, ok := st.(*smithy.ServiceShape)
	if !ok {
		return nil, fmt.Errorf("%s is not a service shape", serviceId)
	}
	seen := map[smithy.ShapeId]bool{}
	var all []smithy.ShapeId
	for _, opId := range operationIds {
		errs, err := sym.ErrorsOf(opId, svc.Meta.Errors)
		if err != nil {
			return nil, err
		}
		for _, e := range errs {
			if !seen[e] {
				seen[e] = true
				all = append(all, e)
			}
		}
	}
	return all, nil
}

// reachableShapes walks member/target edges from every operation's input,
// output, and the service's errors to find the full shape closure the
// shapes module must declare.
func reachableShapes(model *smithy.Model, sym *smithy.SymbolsProvider, operationIds, errorIds []smithy.ShapeId) []smithy.ShapeId {
	visited := map[smithy.ShapeId]bool{}
	var order []smithy.ShapeId

	var visit func(id smithy.ShapeId)
	visit = func(id smithy.ShapeId) {
		if visited[id] {
			return
		}
		visited[id] = true
		st, ok := model.ShapeType(id)
		if !ok {
			return
		}
		order = append(order, id)
		switch t := st.(type) {
		case *smithy.TargetShape:
			visit(t.Target)
		case *smithy.ListShape:
			visit(t.Member)
		case *smithy.MapShape:
			visit(t.Key)
			visit(t.Value)
		}
		members, err := sym.Members(id)
		if err == nil {
			for _, m := range members {
				visit(m)
			}
		}
	}

	for _, opId := range operationIds {
		st, ok := model.ShapeType(opId)
		if !ok {
			continue
		}
		op, ok := st.(*smithy.OperationShape)
		if !ok {
			continue
		}
		if op.Meta.HasInput {
			visit(op.Meta.Input)
		}
		if op.Meta.HasOutput {
			visit(op.Meta.Output)
		}
	}
	for _, errId := range errorIds {
		visit(errId)
	}
	return order
}
