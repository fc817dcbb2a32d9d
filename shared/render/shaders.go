package render

const sceneVertexShader = `
#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matModel;

out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;

void main()
{
    fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
    fragTexCoord = vertexTexCoord;
    fragNormal = normalize(mat3(matModel) * vertexNormal);
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// Fragment shader compartilhado pelos cinco modos de saída. O uniform
// "mode" seleciona a variante:
//   0: textura + iluminação
//   1: iluminação
//   2: cor constante (Kd)
//   3: profundidade linear
//   4: profundidade inversa empacotada em 16 bits (R=ms, G=ls)
// NEAR/FAR precisam casar com Near/Far em depth.go.
const sceneFragmentShader = `
#version 330

in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;

out vec4 finalColor;

const float NEAR = 0.1;
const float FAR  = 100.0;
const float INV_NEAR = 1.0/NEAR;
const float INV_FAR  = 1.0/FAR;
const float DEPTH_SCALE = 20.0;

uniform float mode;
uniform vec3 Kd;
uniform vec3 Ka;
uniform vec3 eye;
uniform float dissolve;
uniform sampler2D texture0;
uniform float minDepth;

// Converte valor do depth buffer em profundidade inversa.
// d = 0.0 em INV_NEAR, 1.0 em INV_FAR.
float InverseDepth(float d) {
    return INV_NEAR + d * (INV_FAR - INV_NEAR);
}

// Converte valor do depth buffer em profundidade verdadeira.
float TrueDepth(float d) {
    return 1.0 / InverseDepth(d);
}

void main()
{
    int m = int(mode + 0.5);

    if (m == 2) { // cor constante
        finalColor = vec4(Kd, 1.0);
        return;
    }
    if (m == 3) { // profundidade
        float scaledDepth = TrueDepth(gl_FragCoord.z) / DEPTH_SCALE;
        finalColor = vec4(vec3(scaledDepth), 1.0);
        return;
    }
    if (m == 4) { // profundidade inversa
        float invDepth = InverseDepth(gl_FragCoord.z);
        // 16 bits de ponto fixo, 65535 corresponde a minDepth = NEAR.
        float f = 65535.0 * minDepth * invDepth + 0.5;
        float ms = floor(f / 256.0);
        float ls = floor(f - ms * 256.0);
        finalColor = vec4(ms/255.0, ls/255.0, 0.0, 1.0);
        return;
    }

    float alpha = dissolve;
    vec3 color;
    if (m == 0) {
        vec4 texcolor = texture(texture0, fragTexCoord);
        // toda face tem Kd; basta multiplicar pela textura
        color = Kd * texcolor.xyz;
        alpha = min(texcolor.w, alpha);
    } else {
        color = Kd;
    }

    vec3 inVec = normalize(eye - fragPosition);
    // mantém alguma cor difusa mesmo em incidência rasante
    float scale = max(dot(inVec, fragNormal), 0.3);
    vec3 ambient = Ka * 0.1;
    color = color * scale + ambient;
    color = clamp(color, 0.0, 1.0);
    finalColor = vec4(color, alpha);
}
`
