// Package wgpu_engine executes the instanced primitive pipelines on a
// WebGPU device. It owns the shared quad vertex buffer, one growable
// instance buffer per pipeline, and the compiled render pipelines.
package wgpu_engine

import (
	"fmt"

	"honnef.co/go/bounce/gfx"
	"honnef.co/go/bounce/profiler"
	"honnef.co/go/bounce/renderer"
	"honnef.co/go/safeish"
	"honnef.co/go/wgpu"
)

type Engine struct {
	Device *wgpu.Device

	rect   *primitivePipeline
	circle *primitivePipeline

	quadBuf      *wgpu.Buffer
	quadSize     uint64
	quadUploaded bool

	rectInstances   instanceBuffer
	circleInstances instanceBuffer
}

// New builds both pipelines for the given surface format.
func New(dev *wgpu.Device, format wgpu.TextureFormat) *Engine {
	eng := &Engine{
		Device: dev,
		rect:   newPrimitivePipeline(dev, renderer.RectanglePipeline, format),
		circle: newPrimitivePipeline(dev, renderer.CirclePipeline, format),
	}
	eng.quadSize = uint64(len(safeish.SliceCast[[]byte](renderer.QuadVertices[:])))
	eng.quadBuf = dev.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "quad vertices",
		Size:  eng.quadSize,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	return eng
}

// RenderToTexture draws one display list into the texture view. Labels
// have no GPU pipeline and are skipped; hosts that want them draw text on
// top themselves.
func (eng *Engine) RenderToTexture(
	queue *wgpu.Queue,
	dl *renderer.DisplayList,
	view *wgpu.TextureView,
	params *renderer.RenderParams,
	pgroup profiler.ProfilerGroup,
) {
	pgroup = pgroup.Start("RenderToTexture")
	defer pgroup.End()

	if !eng.quadUploaded {
		queue.WriteBuffer(eng.quadBuf, 0, safeish.SliceCast[[]byte](renderer.QuadVertices[:]))
		eng.quadUploaded = true
	}

	rectBuf := eng.rectInstances.upload(eng.Device, queue, "rectangle instances",
		safeish.SliceCast[[]byte](dl.Rectangles))
	circleBuf := eng.circleInstances.upload(eng.Device, queue, "circle instances",
		safeish.SliceCast[[]byte](dl.Circles))

	base := gfx.Premul32(&params.BaseColor)

	encoder := eng.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "primitives"})
	defer encoder.Release()
	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(base[0]),
					G: float64(base[1]),
					B: float64(base[2]),
					A: float64(base[3]),
				},
			},
		},
	})
	defer renderPass.Release()

	if len(dl.Rectangles) > 0 {
		renderPass.SetPipeline(eng.rect.pipeline)
		renderPass.SetVertexBuffer(0, eng.quadBuf, 0, eng.quadSize)
		renderPass.SetVertexBuffer(1, rectBuf, 0, eng.rectInstances.cap)
		renderPass.Draw(6, uint32(len(dl.Rectangles)), 0, 0)
	}
	if len(dl.Circles) > 0 {
		renderPass.SetPipeline(eng.circle.pipeline)
		renderPass.SetVertexBuffer(0, eng.quadBuf, 0, eng.quadSize)
		renderPass.SetVertexBuffer(1, circleBuf, 0, eng.circleInstances.cap)
		renderPass.Draw(6, uint32(len(dl.Circles)), 0, 0)
	}
	renderPass.End()

	cmd := encoder.Finish(nil)
	defer cmd.Release()
	queue.Submit(cmd)
}

// RenderToSurface draws one display list into the acquired surface
// texture.
func (eng *Engine) RenderToSurface(
	queue *wgpu.Queue,
	dl *renderer.DisplayList,
	surface *wgpu.SurfaceTexture,
	params *renderer.RenderParams,
	pgroup profiler.ProfilerGroup,
) {
	pgroup = pgroup.Start("RenderToSurface")
	defer pgroup.End()

	view := surface.Texture.CreateView(nil)
	defer view.Release()
	eng.RenderToTexture(queue, dl, view, params, pgroup)
}

// instanceBuffer is a grow-only vertex buffer for per-instance data.
type instanceBuffer struct {
	buf *wgpu.Buffer
	cap uint64
}

func (b *instanceBuffer) upload(dev *wgpu.Device, queue *wgpu.Queue, label string, data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	if b.buf == nil || b.cap < size {
		if b.buf != nil {
			b.buf.Release()
		}
		b.cap = max(size, 256)
		b.buf = dev.CreateBuffer(&wgpu.BufferDescriptor{
			Label: label,
			Size:  b.cap,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
	}
	if size > 0 {
		queue.WriteBuffer(b.buf, 0, data)
	}
	return b.buf
}

type primitivePipeline struct {
	pipeline *wgpu.RenderPipeline
}

func newPrimitivePipeline(dev *wgpu.Device, shader renderer.RenderShader, format wgpu.TextureFormat) *primitivePipeline {
	module := dev.CreateShaderModule(wgpu.ShaderModuleDescriptor{
		Label:  shader.Name + " shader",
		Source: wgpu.ShaderSourceWGSL(shader.WGSL),
	})
	layout := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: shader.Name + " pipeline layout",
	})

	var blend *wgpu.BlendState
	if shader.Blend {
		blend = &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	}

	pipeline := dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  shader.Name + " pipeline",
		Layout: layout,
		Vertex: &wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    vertexBuffersToWGPU(shader.Buffers),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: &wgpu.PrimitiveState{
			Topology:         wgpu.PrimitiveTopologyTriangleList,
			StripIndexFormat: ^wgpu.IndexFormat(0),
			FrontFace:        wgpu.FrontFaceCCW,
			// Negative extents mirror-flip the quad, so winding isn't
			// fixed; don't cull.
			CullMode: wgpu.CullModeNone,
		},
		Multisample: &wgpu.MultisampleState{
			Count:                  1,
			Mask:                   ^uint32(0),
			AlphaToCoverageEnabled: false,
		},
	})
	return &primitivePipeline{pipeline: pipeline}
}

func vertexBuffersToWGPU(bufs []renderer.VertexBuffer) []wgpu.VertexBufferLayout {
	out := make([]wgpu.VertexBufferLayout, len(bufs))
	for i, b := range bufs {
		attrs := make([]wgpu.VertexAttribute, len(b.Attributes))
		for j, a := range b.Attributes {
			attrs[j] = wgpu.VertexAttribute{
				Format:         vertexFormatToWGPU(a.Format),
				Offset:         a.Offset,
				ShaderLocation: a.Location,
			}
		}
		out[i] = wgpu.VertexBufferLayout{
			ArrayStride: b.Stride,
			StepMode:    stepModeToWGPU(b.Step),
			Attributes:  attrs,
		}
	}
	return out
}

func vertexFormatToWGPU(f renderer.VertexFormat) wgpu.VertexFormat {
	switch f {
	case renderer.Float32:
		return wgpu.VertexFormatFloat32
	case renderer.Float32x2:
		return wgpu.VertexFormatFloat32x2
	case renderer.Float32x3:
		return wgpu.VertexFormatFloat32x3
	default:
		panic(fmt.Sprintf("unhandled value %d", f))
	}
}

func stepModeToWGPU(s renderer.StepMode) wgpu.VertexStepMode {
	switch s {
	case renderer.StepVertex:
		return wgpu.VertexStepModeVertex
	case renderer.StepInstance:
		return wgpu.VertexStepModeInstance
	default:
		panic(fmt.Sprintf("unhandled value %d", s))
	}
}
