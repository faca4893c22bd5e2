package gpu

// Resource is anything that owns device memory.
type Resource interface {
	Release()
}

// BufferDesc describes a buffer. Contents, when set, initialise it and
// fix its size.
type BufferDesc struct {
	Label    string
	Usage    BufferUsage
	Size     int
	Contents []byte
}

// Buffer is linear device memory.
type Buffer interface {
	Resource
	Size() int
	Usage() BufferUsage
}

// TextureDesc describes a 2D texture. Data, when set, is uploaded tightly
// packed row by row.
type TextureDesc struct {
	Label       string
	Width       int
	Height      int
	Format      TextureFormat
	SampleCount int
	Usage       TextureUsage
	Data        []byte
}

// Texture is a 2D image, sampled or rendered to.
type Texture interface {
	Resource
	Width() int
	Height() int
	Format() TextureFormat
	SampleCount() int
}

// SamplerDesc describes texture sampling state.
type SamplerDesc struct {
	Label   string
	Address AddressMode
	Filter  FilterMode
}

// Sampler is texture sampling state.
type Sampler interface {
	Resource
}

// BindingKind is the type of resource expected at a binding slot.
type BindingKind int

const (
	BindingUniformBuffer BindingKind = iota
	// BindingSampledTexture is a texture together with its sampler.
	BindingSampledTexture
)

// LayoutEntry declares one binding slot.
type LayoutEntry struct {
	Binding int
	Kind    BindingKind
}

// BindGroupLayout is the contract a bind group must satisfy.
type BindGroupLayout struct {
	Label   string
	Entries []LayoutEntry
}

// BindGroupEntry fills one binding slot. Exactly the fields matching the
// layout entry's kind are set.
type BindGroupEntry struct {
	Binding int
	Buffer  Buffer
	Texture Texture
	Sampler Sampler
}

// BindGroupDesc describes a bind group.
type BindGroupDesc struct {
	Label   string
	Layout  BindGroupLayout
	Entries []BindGroupEntry
}

// BindGroup ties resources to shader slots. It does not own them.
type BindGroup interface {
	Resource
	Entries() []BindGroupEntry
}

// VertexAttribute places one attribute inside a vertex buffer element.
type VertexAttribute struct {
	Location int
	Format   VertexFormat
	Offset   int
}

// VertexBufferLayout describes one vertex buffer slot.
type VertexBufferLayout struct {
	Stride     int
	StepMode   StepMode
	Attributes []VertexAttribute
}

// PipelineDesc describes a render pipeline.
type PipelineDesc struct {
	Label          string
	VertexSource   string
	FragmentSource string
	Buffers        []VertexBufferLayout
	// UniformBlocks maps shader uniform block names to buffer bindings.
	UniformBlocks map[string]int
	// Textures maps shader sampler names to texture bindings.
	Textures map[string]int

	ColorFormat  TextureFormat
	DepthFormat  TextureFormat
	SampleCount  int
	PolygonMode  PolygonMode
	CullMode     CullMode
	DepthWrite   bool
	DepthCompare CompareFunc
	Blend        BlendMode
}

// Pipeline is compiled shader and fixed-function state.
type Pipeline interface {
	Resource
	Desc() PipelineDesc
}

// ColorAttachment is the color target of a render pass. With Resolve set,
// View must be multisampled and is resolved into Resolve when the pass ends.
type ColorAttachment struct {
	View    Texture
	Resolve Texture
	Clear   Color
	Store   StoreOp
}

// DepthAttachment is the depth target of a render pass, cleared to Clear.
type DepthAttachment struct {
	View  Texture
	Clear float32
}

// RenderPassDesc describes one render pass.
type RenderPassDesc struct {
	Label string
	Color ColorAttachment
	Depth *DepthAttachment
}

// RenderPass records draw state and draws. Nothing executes until the
// encoder's command buffer is submitted.
type RenderPass interface {
	SetPipeline(p Pipeline)
	SetBindGroup(index int, g BindGroup)
	SetVertexBuffer(slot int, b Buffer)
	SetIndexBuffer(b Buffer, f IndexFormat)
	DrawIndexed(indexCount, instanceCount int)
	End()
}

// CommandBuffer is a finished recording.
type CommandBuffer interface{}

// CommandEncoder records render passes.
type CommandEncoder interface {
	BeginRenderPass(desc RenderPassDesc) RenderPass
	Finish() CommandBuffer
}

// Queue executes command buffers and writes memory in submission order.
type Queue interface {
	WriteBuffer(b Buffer, offset int, data []byte)
	Submit(cmds ...CommandBuffer)
}

// Device creates resources.
type Device interface {
	Features() Feature
	// SupportsSampleCount reports whether render targets of the format
	// may use n samples.
	SupportsSampleCount(f TextureFormat, n int) bool

	CreateBuffer(desc BufferDesc) (Buffer, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	CreateSampler(desc SamplerDesc) (Sampler, error)
	CreateBindGroup(desc BindGroupDesc) (BindGroup, error)
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateCommandEncoder(label string) CommandEncoder
	Queue() Queue
}

// SurfaceConfig is the negotiated size and format of the presentation
// surface.
type SurfaceConfig struct {
	Width  int
	Height int
	Format TextureFormat
	VSync  bool
}

// SurfaceTexture is the image to draw this frame.
type SurfaceTexture interface {
	Texture() Texture
	Present()
}

// Surface is the presentation target.
type Surface interface {
	Formats() []TextureFormat
	Configure(dev Device, cfg SurfaceConfig) error
	Config() SurfaceConfig
	CurrentTexture() (SurfaceTexture, error)
}
