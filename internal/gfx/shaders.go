package gfx

var (
	sceneVertexShader = `
		#version 410
		layout(location = 0) in vec3 position;
		layout(location = 1) in vec3 normal;
		layout(location = 2) in vec2 uv;

		uniform mat4 model;
		uniform mat4 view;
		uniform mat4 projection;

		out vec3 vWorldPos;
		out vec3 vNormal;
		out vec2 vUV;

		void main() {
			vec4 world = model * vec4(position, 1.0);
			vWorldPos = world.xyz;
			vNormal = mat3(model) * normal;
			vUV = uv;
			gl_Position = projection * view * world;
		}
	` + "\x00"

	// Bump mapping follows the screen-space derivative method, so the
	// sphere needs no tangent attribute.
	sceneFragmentShader = `
		#version 410
		in vec3 vWorldPos;
		in vec3 vNormal;
		in vec2 vUV;

		uniform sampler2D map;
		uniform sampler2D bumpMap;
		uniform bool hasMap;
		uniform bool hasBump;
		uniform bool lit;
		uniform bool transparent;
		uniform float bumpScale;
		uniform float shininess;
		uniform vec3 specular;
		uniform vec3 ambient;
		uniform vec3 sunColor;
		uniform vec3 sunDir;
		uniform vec3 cameraPos;

		out vec4 fragColor;

		vec3 perturbNormal(vec3 pos, vec3 n) {
			vec2 dSTdx = dFdx(vUV);
			vec2 dSTdy = dFdy(vUV);
			float h = texture(bumpMap, vUV).x;
			float dBx = bumpScale * (texture(bumpMap, vUV + dSTdx).x - h);
			float dBy = bumpScale * (texture(bumpMap, vUV + dSTdy).x - h);

			vec3 sigmaX = dFdx(pos);
			vec3 sigmaY = dFdy(pos);
			vec3 r1 = cross(sigmaY, n);
			vec3 r2 = cross(n, sigmaX);
			float det = dot(sigmaX, r1);
			vec3 grad = sign(det) * (dBx * r1 + dBy * r2);
			return normalize(abs(det) * n - grad);
		}

		void main() {
			vec4 base = hasMap ? texture(map, vUV) : vec4(1.0);
			if (!lit) {
				fragColor = vec4(base.rgb, 1.0);
				return;
			}

			vec3 n = normalize(vNormal);
			if (hasBump) {
				n = perturbNormal(vWorldPos, n);
			}
			vec3 l = normalize(sunDir);
			float diffuse = max(dot(n, l), 0.0);
			vec3 v = normalize(cameraPos - vWorldPos);
			vec3 halfway = normalize(l + v);
			float spec = diffuse > 0.0 ? pow(max(dot(n, halfway), 0.0), shininess) : 0.0;

			vec3 color = base.rgb * (ambient + sunColor * diffuse) + specular * sunColor * spec;
			fragColor = vec4(color, transparent ? base.a : 1.0);
		}
	` + "\x00"

	// The overlay is one screen-covering triangle generated from
	// gl_VertexID; no vertex buffer is bound.
	overlayVertexShader = `
		#version 410
		out vec2 vUV;
		void main() {
			vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
			vUV = vec2(p.x, 1.0 - p.y);
			gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
		}
	` + "\x00"

	overlayFragmentShader = `
		#version 410
		in vec2 vUV;
		uniform sampler2D overlay;
		out vec4 fragColor;
		void main() {
			fragColor = texture(overlay, vUV);
		}
	` + "\x00"
)
