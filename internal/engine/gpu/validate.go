package gpu

import "fmt"

// PickSampleCount returns the largest of 4, 2 and 1 the device supports
// for format. A non-zero requested count is used as an upper bound.
func PickSampleCount(dev Device, format TextureFormat, requested int) int {
	for _, n := range []int{4, 2} {
		if requested > 0 && n > requested {
			continue
		}
		if dev.SupportsSampleCount(format, n) {
			return n
		}
	}
	return 1
}

// PreferredFormat returns the first sRGB format in formats, or the first
// format when none is sRGB.
func PreferredFormat(formats []TextureFormat) TextureFormat {
	for _, f := range formats {
		if f.IsSRGB() {
			return f
		}
	}
	if len(formats) == 0 {
		return FormatUndefined
	}
	return formats[0]
}

// ValidateBindGroup checks entries against the layout: every declared slot
// filled once with resources of the declared kind, nothing undeclared.
func ValidateBindGroup(desc BindGroupDesc) error {
	seen := make(map[int]bool, len(desc.Entries))
	for _, e := range desc.Entries {
		if seen[e.Binding] {
			return fmt.Errorf("bind group %q: binding %d set twice", desc.Label, e.Binding)
		}
		seen[e.Binding] = true

		le, ok := desc.Layout.entry(e.Binding)
		if !ok {
			return fmt.Errorf("bind group %q: binding %d not in layout %q", desc.Label, e.Binding, desc.Layout.Label)
		}
		switch le.Kind {
		case BindingUniformBuffer:
			if e.Buffer == nil || e.Buffer.Usage()&BufferUniform == 0 {
				return fmt.Errorf("bind group %q: binding %d needs a uniform buffer", desc.Label, e.Binding)
			}
		case BindingSampledTexture:
			if e.Texture == nil || e.Sampler == nil {
				return fmt.Errorf("bind group %q: binding %d needs a texture and a sampler", desc.Label, e.Binding)
			}
		}
	}
	for _, le := range desc.Layout.Entries {
		if !seen[le.Binding] {
			return fmt.Errorf("bind group %q: binding %d missing", desc.Label, le.Binding)
		}
	}
	return nil
}

func (l BindGroupLayout) entry(binding int) (LayoutEntry, bool) {
	for _, e := range l.Entries {
		if e.Binding == binding {
			return e, true
		}
	}
	return LayoutEntry{}, false
}

// ValidateTexture checks a texture description for consistency.
func ValidateTexture(desc TextureDesc) error {
	if desc.Width <= 0 || desc.Height <= 0 {
		return fmt.Errorf("texture %q: invalid size %dx%d", desc.Label, desc.Width, desc.Height)
	}
	if desc.SampleCount < 1 {
		return fmt.Errorf("texture %q: sample count %d", desc.Label, desc.SampleCount)
	}
	if desc.SampleCount > 1 && desc.Usage&TextureBinding != 0 {
		return fmt.Errorf("texture %q: multisampled textures cannot be sampled", desc.Label)
	}
	if desc.Data != nil {
		want := desc.Width * desc.Height * desc.Format.BytesPerTexel()
		if len(desc.Data) != want {
			return fmt.Errorf("texture %q: %d bytes of data, want %d", desc.Label, len(desc.Data), want)
		}
	}
	return nil
}
