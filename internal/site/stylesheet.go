package site

// defaultStylesheet is shipped when the static dir does not carry a
// style.css of its own. The --astro-code-* custom properties feed the
// css-variables highlight theme emitted by the markdown renderer.
const defaultStylesheet = `:root {
  --background: #1d1f21;
  --foreground: #c9cacc;
  --accent: #ffb86c;
  --astro-code-color-text: #c9cacc;
  --astro-code-color-background: #16181a;
  --astro-code-token-constant: #bd93f9;
  --astro-code-token-string: #f1fa8c;
  --astro-code-token-comment: #6272a4;
  --astro-code-token-keyword: #ff79c6;
  --astro-code-token-parameter: #ffb86c;
  --astro-code-token-function: #50fa7b;
  --astro-code-token-string-expression: #f1fa8c;
  --astro-code-token-punctuation: #c9cacc;
  --astro-code-token-link: #8be9fd;
}

html {
  background-color: var(--background);
  color: var(--foreground);
  font-family: monospace;
  font-size: 1rem;
  line-height: 1.6;
}

body {
  max-width: 48rem;
  margin: 0 auto;
  padding: 1rem;
}

a {
  color: var(--accent);
}

header nav a {
  font-weight: bold;
  text-decoration: none;
}

h1, h2, h3 {
  color: var(--accent);
}

time {
  color: #737577;
}

pre.astro-code {
  background-color: var(--astro-code-color-background);
  color: var(--astro-code-color-text);
  padding: 1rem;
  overflow-x: auto;
}

ul.post-list {
  list-style: none;
  padding: 0;
}

ul.post-list li {
  margin-bottom: 1rem;
}

ul.tags {
  list-style: none;
  display: flex;
  gap: 0.5rem;
  padding: 0;
}

ul.tags li::before {
  content: "#";
}

img {
  max-width: 100%;
}

blockquote {
  border-left: 2px solid var(--accent);
  margin-left: 0;
  padding-left: 1rem;
}
`
