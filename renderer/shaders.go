package renderer

import (
	"unsafe"
)

// VertexFormat describes a vertex attribute's type, independently of any
// GPU API. The engine maps it to the backend's enum.
type VertexFormat int

const (
	Float32 VertexFormat = iota + 1
	Float32x2
	Float32x3
)

// StepMode says whether a vertex buffer advances per vertex or per
// instance.
type StepMode int

const (
	StepVertex StepMode = iota + 1
	StepInstance
)

type VertexAttribute struct {
	Format VertexFormat
	// Offset in bytes from the start of the element.
	Offset uint64
	// Location is the WGSL @location index.
	Location uint32
}

type VertexBuffer struct {
	// Stride in bytes between elements.
	Stride     uint64
	Step       StepMode
	Attributes []VertexAttribute
}

// RenderShader is one instanced pipeline: its WGSL program and the vertex
// buffers it binds. Buffer 0 is always the shared quad stream.
type RenderShader struct {
	Name string
	WGSL string
	// Blend enables alpha blending on the color target.
	Blend   bool
	Buffers []VertexBuffer
}

var quadBuffer = VertexBuffer{
	Stride: uint64(unsafe.Sizeof(QuadVertex{})),
	Step:   StepVertex,
	Attributes: []VertexAttribute{
		{Format: Float32x2, Offset: 0, Location: 0},
	},
}

// RectanglePipeline draws solid axis-aligned rectangles. Locations 1-4
// mirror RectangleInstance field by field.
var RectanglePipeline = RenderShader{
	Name:  "rectangle",
	WGSL:  rectangleWGSL,
	Blend: false,
	Buffers: []VertexBuffer{
		quadBuffer,
		{
			Stride: uint64(unsafe.Sizeof(RectangleInstance{})),
			Step:   StepInstance,
			Attributes: []VertexAttribute{
				{Format: Float32x2, Offset: 0, Location: 1},
				{Format: Float32, Offset: 8, Location: 2},
				{Format: Float32, Offset: 12, Location: 3},
				{Format: Float32x3, Offset: 16, Location: 4},
			},
		},
	},
}

// CirclePipeline draws anti-aliased discs. Locations 1-3 mirror
// CircleInstance field by field. The target needs alpha blending for the
// edge band to composite.
var CirclePipeline = RenderShader{
	Name:  "circle",
	WGSL:  circleWGSL,
	Blend: true,
	Buffers: []VertexBuffer{
		quadBuffer,
		{
			Stride: uint64(unsafe.Sizeof(CircleInstance{})),
			Step:   StepInstance,
			Attributes: []VertexAttribute{
				{Format: Float32x2, Offset: 0, Location: 1},
				{Format: Float32, Offset: 8, Location: 2},
				{Format: Float32x3, Offset: 12, Location: 3},
			},
		},
	},
}

const rectangleWGSL = `
struct VertexInput {
	@location(0) position: vec2<f32>,
}

struct InstanceInput {
	@location(1) center: vec2<f32>,
	@location(2) width: f32,
	@location(3) height: f32,
	@location(4) color: vec3<f32>,
}

struct VertexOutput {
	@builtin(position) clip_position: vec4<f32>,
	@location(0) color: vec3<f32>,
}

@vertex
fn vs_main(v: VertexInput, inst: InstanceInput) -> VertexOutput {
	var out: VertexOutput;
	let world = v.position * vec2<f32>(inst.width, inst.height) * 0.5 + inst.center;
	out.clip_position = vec4<f32>(world, 0.0, 1.0);
	out.color = inst.color;
	return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
	return vec4<f32>(in.color, 1.0);
}
`

const circleWGSL = `
struct VertexInput {
	@location(0) position: vec2<f32>,
}

struct InstanceInput {
	@location(1) center: vec2<f32>,
	@location(2) radius: f32,
	@location(3) color: vec3<f32>,
}

struct VertexOutput {
	@builtin(position) clip_position: vec4<f32>,
	@location(0) local: vec2<f32>,
	@location(1) color: vec3<f32>,
	@location(2) radius: f32,
}

@vertex
fn vs_main(v: VertexInput, inst: InstanceInput) -> VertexOutput {
	var out: VertexOutput;
	let local = v.position * inst.radius;
	out.local = local;
	out.clip_position = vec4<f32>(local + inst.center, 0.0, 1.0);
	out.color = inst.color;
	out.radius = inst.radius;
	return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
	let dist = length(in.local);
	let edge = fwidth(dist);
	let alpha = 1.0 - smoothstep(in.radius - edge, in.radius + edge, dist);
	return vec4<f32>(in.color, alpha);
}
`
