package judger

// adapterSource is the fixed entry program written next to the caller's
// judger source. It owns every exit path, so the Go side reads results
// from the exit code alone: 0/1 for true/false, 2 when the judger raised,
// 3 for a shape violation (missing callable, bad arity, non-bool return).
// Check mode binds the signature without calling it; judgers that parse
// their arguments must not be rejected over placeholder values. It
// relies only on the interpreter's standard library.
const adapterSource = `import inspect
import json
import sys

SOURCE = 'judger.py'


def fail(code, msg):
    print(msg, file=sys.stderr)
    sys.exit(code)


def load():
    ns = {'__name__': 'judger'}
    try:
        with open(SOURCE, encoding='utf-8') as f:
            src = f.read()
        exec(compile(src, SOURCE, 'exec'), ns)
    except BaseException as e:
        fail(2, f'{type(e).__name__}: {e}')
    judge = ns.get('judge')
    if judge is None:
        fail(3, "judger does not define 'judge'")
    if not callable(judge):
        fail(3, "'judge' is not callable")
    try:
        inspect.signature(judge).bind(0, '', '', '')
    except TypeError as e:
        fail(3, f'judge cannot accept (index, input, expected, actual): {e}')
    except ValueError as e:
        fail(3, f'cannot inspect judge signature: {e}')
    return judge


def invoke(judge, *args):
    try:
        result = judge(*args)
    except BaseException as e:
        fail(2, f'{type(e).__name__}: {e}')
    if not isinstance(result, bool):
        fail(3, f'judge returned {type(result).__name__}, expected bool')
    return result


def main():
    mode = sys.argv[1] if len(sys.argv) > 1 else 'judge'
    judge = load()
    if mode == 'check':
        sys.exit(0)
    args = json.load(sys.stdin)
    ok = invoke(judge, args['index'], args['input'], args['expected'], args['actual'])
    sys.exit(0 if ok else 1)


try:
    main()
except SystemExit:
    raise
except BaseException as e:
    fail(2, f'adapter failure: {type(e).__name__}: {e}')
`
