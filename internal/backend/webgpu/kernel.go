package webgpu

import (
	"embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

//go:embed template/*.wgsl
var templates embed.FS

// Kernel is a compiled compute pipeline ready to be dispatched.
type Kernel struct {
	key      string
	shader   *wgpu.ShaderModule
	pipeline *wgpu.ComputePipeline
}

// Key returns the specialization key the kernel was compiled for.
func (k *Kernel) Key() string {
	return k.key
}

func (k *Kernel) release() {
	if k.pipeline != nil {
		k.pipeline.Release()
	}
	if k.shader != nil {
		k.shader.Release()
	}
}

// Replacement substitutes a placeholder of a template with a value.
type Replacement struct {
	Placeholder string
	Value       string
}

// KernelSettings identifies one specialization of a kernel template.
//
// Two settings with the same Key must render the same source: Op names the
// operator and therefore has to determine the Replacements.
type KernelSettings struct {
	// Template is the file name under template/ without extension.
	Template string
	// Op is the operator identity, empty for single-purpose templates.
	Op string
	// Elem substitutes {{ elem }}.
	Elem tensor.DataType
	// Int substitutes {{ int }}.
	Int tensor.DataType
	// Workgroup sizes substitute {{ workgroup_size_x|y|z }}.
	WorkgroupX, WorkgroupY, WorkgroupZ int
	// Replacements are operator specific substitutions.
	Replacements []Replacement
}

// Key returns the cache key of the specialization.
func (s KernelSettings) Key() string {
	return fmt.Sprintf("%s/%s/%s/%s/%dx%dx%d",
		s.Template, s.Op, s.Elem.WGSL(), s.Int.WGSL(),
		s.WorkgroupX, s.WorkgroupY, s.WorkgroupZ)
}

var unresolvedPlaceholder = regexp.MustCompile(`\{\{\s*[a-z_]+\s*\}\}`)

// Render loads the template and substitutes every placeholder.
func (s KernelSettings) Render() (string, error) {
	source, err := templates.ReadFile("template/" + s.Template + ".wgsl")
	if err != nil {
		return "", errors.Wrapf(ErrKernel, "template %q: %v", s.Template, err)
	}

	pairs := []string{
		"{{ elem }}", s.Elem.WGSL(),
		"{{ int }}", s.Int.WGSL(),
		"{{ workgroup_size_x }}", strconv.Itoa(max(s.WorkgroupX, 1)),
		"{{ workgroup_size_y }}", strconv.Itoa(max(s.WorkgroupY, 1)),
		"{{ workgroup_size_z }}", strconv.Itoa(max(s.WorkgroupZ, 1)),
	}
	for _, r := range s.Replacements {
		pairs = append(pairs, r.Placeholder, r.Value)
	}
	code := strings.NewReplacer(pairs...).Replace(string(source))

	if missing := unresolvedPlaceholder.FindString(code); missing != "" {
		return "", errors.Wrapf(ErrKernel, "template %q: unresolved placeholder %s", s.Template, missing)
	}
	return code, nil
}

// Compile returns the kernel for settings, compiling it on first use.
// Concurrent first uses of the same key compile once.
func (c *Context) Compile(settings KernelSettings) (*Kernel, error) {
	key := settings.Key()

	c.kernelsMu.RLock()
	if kernel, exists := c.kernels[key]; exists {
		c.kernelsMu.RUnlock()
		return kernel, nil
	}
	c.kernelsMu.RUnlock()

	v, err, _ := c.compiling.Do(key, func() (any, error) {
		c.kernelsMu.RLock()
		kernel, exists := c.kernels[key]
		c.kernelsMu.RUnlock()
		if exists {
			return kernel, nil
		}

		kernel, err := c.compile(key, settings)
		if err != nil {
			return nil, err
		}

		c.kernelsMu.Lock()
		c.kernels[key] = kernel
		c.kernelsMu.Unlock()
		return kernel, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Kernel), nil
}

func (c *Context) compile(key string, settings KernelSettings) (kernel *Kernel, err error) {
	code, err := settings.Render()
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			kernel = nil
			err = errors.Wrapf(ErrKernel, "%s: %v", key, r)
		}
	}()

	shader := c.gpu.CreateShaderModuleWGSL(code)
	if shader == nil {
		return nil, errors.Wrapf(ErrKernel, "%s: invalid shader module", key)
	}

	// Create compute pipeline with auto layout (nil layout)
	pipeline := c.gpu.CreateComputePipelineSimple(nil, shader, "main")
	if pipeline == nil {
		shader.Release()
		return nil, errors.Wrapf(ErrKernel, "%s: invalid pipeline", key)
	}

	klog.V(2).InfoS("Compiled kernel", "device", c.device, "key", key)
	return &Kernel{key: key, shader: shader, pipeline: pipeline}, nil
}

// Kernels returns the number of compiled kernels in the cache.
func (c *Context) Kernels() int {
	c.kernelsMu.RLock()
	defer c.kernelsMu.RUnlock()
	return len(c.kernels)
}
