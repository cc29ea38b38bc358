package generate

// BuiltinStubMarker is the literal line the builtin C stub always starts
// with.  The harness that links the emitted IR against this stub splits a
// combined compiler output stream on this exact line (IR text before it,
// stub source from it onward).
const BuiltinStubMarker = "typedef unsigned long size_t;"

// BuiltinStub is the companion C source exposing the five runtime
// functions the emitted IR declares: printInt, printlnInt, printlnStr,
// getInt, exit_rt.  The target is bare-metal riscv64-unknown-elf, so the
// stub talks to the kernel directly via `ecall` rather than linking libc.
const BuiltinStub = BuiltinStubMarker + `
typedef long ssize_t;

static long rv_syscall3(long n, long a0, long a1, long a2) {
  register long a7 __asm__("a7") = n;
  register long x0 __asm__("a0") = a0;
  register long x1 __asm__("a1") = a1;
  register long x2 __asm__("a2") = a2;
  __asm__ volatile("ecall"
                    : "+r"(x0)
                    : "r"(a7), "r"(x1), "r"(x2)
                    : "memory");
  return x0;
}

static size_t rv_strlen(const char *s) {
  size_t n = 0;
  while (s[n]) n++;
  return n;
}

static void rv_write(const char *buf, size_t len) {
  rv_syscall3(64 /* write */, 1 /* stdout */, (long)buf, (long)len);
}

static void rv_itoa(long v, char *out, size_t *outLen) {
  char tmp[24];
  size_t n = 0;
  int neg = v < 0;
  unsigned long uv = neg ? (unsigned long)(-v) : (unsigned long)v;

  do {
    tmp[n++] = '0' + (uv % 10);
    uv /= 10;
  } while (uv != 0);

  if (neg) tmp[n++] = '-';

  size_t len = 0;
  while (n > 0) out[len++] = tmp[--n];
  *outLen = len;
}

long printInt(long x) {
  char buf[24];
  size_t len = 0;
  rv_itoa(x, buf, &len);
  rv_write(buf, len);
  return x;
}

long printlnInt(long x) {
  char buf[25];
  size_t len = 0;
  rv_itoa(x, buf, &len);
  buf[len++] = '\n';
  rv_write(buf, len);
  return x;
}

long printlnStr(const char *s) {
  size_t len = s ? rv_strlen(s) : 0;
  if (len > 0) rv_write(s, len);
  rv_write("\n", 1);
  return 0;
}

long getInt(void) {
  char buf[24];
  size_t n = 0;
  long v = 0;
  int neg = 0;

  for (;;) {
    char c;
    long r = rv_syscall3(63 /* read */, 0 /* stdin */, (long)&c, 1);
    if (r <= 0) break;
    if (c == '\n') break;
    if (n == 0 && c == '-') {
      neg = 1;
      continue;
    }
    if (c < '0' || c > '9') continue;
    buf[n++] = c;
    if (n == sizeof(buf)) break;
  }

  for (size_t i = 0; i < n; i++) {
    v = v * 10 + (buf[i] - '0');
  }

  return neg ? -v : v;
}

__attribute__((noreturn)) void exit_rt(long code) {
  rv_syscall3(93 /* exit */, code, 0, 0);
  for (;;) {}
}
`
